package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"weddinginvite/internal/rsvp"
)

var (
	ErrPassesDisabled = errors.New("passes disabled")
	ErrInvalidPass    = errors.New("invalid pass token")
	ErrPassExpired    = errors.New("pass window closed")
)

// passValidAfterTarget keeps a pass link usable through the day of the
// event.
const passValidAfterTarget = 24 * time.Hour

// PassClaims is what a signed pass link carries.
type PassClaims struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Pases  int    `json:"pases"`
	Repeat bool   `json:"repeat,omitempty"`
	jwt.RegisteredClaims
}

type PassService struct {
	secret    []byte
	expiresAt time.Time
	now       func() time.Time
}

// NewPassService signs passes that expire a day after target.
func NewPassService(secret string, target time.Time) *PassService {
	return &PassService{
		secret:    []byte(secret),
		expiresAt: target.Add(passValidAfterTarget),
		now:       time.Now,
	}
}

// Issue signs a pass for c. Once the pass window has closed it returns
// ErrPassExpired instead of a token Verify would reject.
func (s *PassService) Issue(c rsvp.Confirmation) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrPassesDisabled
	}
	now := s.now()
	if !now.Before(s.expiresAt) {
		return "", ErrPassExpired
	}
	claims := &PassClaims{
		Code:   c.Code,
		Name:   c.DisplayName,
		Pases:  c.MaxPases,
		Repeat: c.AlreadyConfirmed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Code,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign pass: %w", err)
	}
	return signed, nil
}

func (s *PassService) Verify(tokenStr string) (*PassClaims, error) {
	if s == nil || len(s.secret) == 0 {
		return nil, ErrPassesDisabled
	}
	claims := &PassClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPass, err)
	}
	return claims, nil
}
