package services

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"weddinginvite/internal/rsvp"
)

// notifyTimeout bounds each background notification.
const notifyTimeout = 30 * time.Second

// ConfirmResult is an RSVP outcome plus the printable pass link, if any.
type ConfirmResult struct {
	rsvp.Outcome
	PassURL string `json:"pass_url,omitempty"`
}

type RSVPService struct {
	client    *rsvp.Client
	passes    *PassService
	baseURL   string
	notifiers []Notifier
	log       *zap.Logger

	wg sync.WaitGroup
}

// NewRSVPService wires the confirmation flow. passes may be nil to disable
// pass links.
func NewRSVPService(client *rsvp.Client, passes *PassService, baseURL string, log *zap.Logger, notifiers ...Notifier) *RSVPService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RSVPService{
		client:    client,
		passes:    passes,
		baseURL:   strings.TrimRight(baseURL, "/"),
		notifiers: notifiers,
		log:       log.Named("rsvp"),
	}
}

// Confirm runs one submission. The only error is rsvp.ErrSubmissionInFlight.
func (s *RSVPService) Confirm(ctx context.Context, raw string) (*ConfirmResult, error) {
	out, err := s.client.Submit(ctx, raw)
	if err != nil {
		s.log.Info("submission rejected", zap.String("code", rsvp.NormalizeCode(raw)), zap.Error(err))
		return nil, err
	}

	res := &ConfirmResult{Outcome: out}
	s.log.Info("submission finished",
		zap.String("code", out.Code),
		zap.Stringer("state", out.State),
		zap.String("error_code", out.ErrorCode),
	)

	if out.State != rsvp.StateSuccess || out.Confirmation == nil {
		return res, nil
	}

	if s.passes != nil {
		token, err := s.passes.Issue(*out.Confirmation)
		if err != nil {
			s.log.Warn("pass not issued", zap.String("code", out.Code), zap.Error(err))
		} else {
			res.PassURL = s.passURL(token)
		}
	}

	if !out.Confirmation.AlreadyConfirmed {
		s.notify(*out.Confirmation)
	}
	return res, nil
}

func (s *RSVPService) passURL(token string) string {
	return s.baseURL + "/api/passes/" + url.PathEscape(token)
}

// notify fans out in the background; the guest never waits on it.
func (s *RSVPService) notify(c rsvp.Confirmation) {
	for _, n := range s.notifiers {
		s.wg.Add(1)
		go func(n Notifier) {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := n.NotifyConfirmation(ctx, c); err != nil {
				s.log.Warn("notification failed", zap.String("code", c.Code), zap.Error(err))
			}
		}(n)
	}
}

// Wait blocks until queued notifications are done.
func (s *RSVPService) Wait() {
	s.wg.Wait()
}
