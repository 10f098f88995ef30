package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"weddinginvite/internal/rsvp"
)

const (
	ModeJSONP = "jsonp"
	ModeJSON  = "json"

	DefaultConfirmTimeout = 12 * time.Second

	maxBodyBytes = 64 << 10
)

// ConfirmClient talks to the spreadsheet-backed confirmation script.
// It implements rsvp.Gateway.
type ConfirmClient struct {
	Endpoint string
	Mode     string        // jsonp (default) or json
	Timeout  time.Duration // caller-enforced; the endpoint has no deadline of its own
	DryRun   bool

	httpClient *http.Client
	callbacks  *callbackRegistry
	newName    func() string
	log        *zap.Logger
}

// ConfirmResponse is the payload the script hands to the callback.
type ConfirmResponse struct {
	OK               bool            `json:"ok"`
	Error            string          `json:"error"`
	ErrorCode        string          `json:"errorCode"`
	DisplayName      string          `json:"displayName"`
	MaxPases         json.RawMessage `json:"maxPases"`
	AlreadyConfirmed bool            `json:"alreadyConfirmed"`
}

func NewConfirmClient(endpoint string) *ConfirmClient {
	return NewConfirmClientWithOptions(endpoint, ModeJSONP, DefaultConfirmTimeout, false, nil)
}

func NewConfirmClientWithOptions(endpoint, mode string, timeout time.Duration, dryRun bool, log *zap.Logger) *ConfirmClient {
	if mode == "" {
		mode = ModeJSONP
	}
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ConfirmClient{
		Endpoint:   endpoint,
		Mode:       mode,
		Timeout:    timeout,
		DryRun:     dryRun,
		httpClient: &http.Client{},
		callbacks:  newCallbackRegistry(),
		newName:    NewCallbackName,
		log:        log.Named("confirm"),
	}
}

// WithHTTPClient swaps the underlying client (tests, TLS fakes).
func (c *ConfirmClient) WithHTTPClient(hc *http.Client) *ConfirmClient {
	c.httpClient = hc
	return c
}

// Pending reports callbacks registered by attempts that have not finished.
func (c *ConfirmClient) Pending() int {
	return c.callbacks.len()
}

// Confirm sends action=confirm for an already normalized code.
func (c *ConfirmClient) Confirm(ctx context.Context, code string) (*rsvp.Confirmation, error) {
	if c.DryRun || c.Endpoint == "" {
		c.log.Info("dry-run confirm", zap.String("code", code))
		return &rsvp.Confirmation{Code: code, DisplayName: rsvp.DefaultGuestName, MaxPases: 2}, nil
	}

	name := c.newName()
	release := c.callbacks.register(name)
	defer release()

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	reqURL, err := c.buildURL(code, name)
	if err != nil {
		return nil, &rsvp.TransportError{Op: "build request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &rsvp.TransportError{Op: "build request", Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("confirm request failed", zap.String("code", code), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &rsvp.TransportError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &rsvp.TransportError{Op: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &rsvp.TransportError{Op: "request", Err: fmt.Errorf("endpoint returned status %d", resp.StatusCode)}
	}

	payload, err := c.decode(body, name)
	if err != nil {
		c.log.Warn("confirm response malformed", zap.String("code", code), zap.Error(err))
		return nil, &rsvp.TransportError{Op: "parse response", Err: err}
	}

	c.log.Info("confirm response",
		zap.String("code", code),
		zap.Bool("ok", payload.OK),
		zap.Duration("elapsed", time.Since(start)),
	)
	return toConfirmation(code, payload)
}

func (c *ConfirmClient) buildURL(code, callback string) (string, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("action", "confirm")
	q.Set("code", code)
	if c.Mode == ModeJSONP {
		q.Set("callback", callback)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *ConfirmClient) decode(body []byte, callback string) (*ConfirmResponse, error) {
	raw := body
	if c.Mode == ModeJSONP {
		var err error
		if raw, err = UnwrapJSONP(body, callback); err != nil {
			return nil, err
		}
	}

	var payload ConfirmResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &payload, nil
}

// UnwrapJSONP extracts the JSON argument of `callback(...)`. An optional
// leading /**/ and trailing semicolon are tolerated; any other callback
// name is rejected.
func UnwrapJSONP(body []byte, callback string) ([]byte, error) {
	s := bytes.TrimSpace(body)
	s = bytes.TrimPrefix(s, []byte("/**/"))
	s = bytes.TrimSpace(s)
	s = bytes.TrimSuffix(s, []byte(";"))
	s = bytes.TrimSpace(s)

	prefix := []byte(callback + "(")
	if !bytes.HasPrefix(s, prefix) {
		return nil, errors.New("response does not invoke the expected callback")
	}
	if !bytes.HasSuffix(s, []byte(")")) {
		return nil, errors.New("unterminated callback invocation")
	}
	return bytes.TrimSpace(s[len(prefix) : len(s)-1]), nil
}

func toConfirmation(code string, p *ConfirmResponse) (*rsvp.Confirmation, error) {
	if !p.OK {
		errCode := p.Error
		if errCode == "" {
			errCode = p.ErrorCode
		}
		if errCode == "" {
			errCode = rsvp.CodeUnknown
		}
		return nil, &rsvp.DomainError{Code: errCode}
	}

	name := strings.TrimSpace(p.DisplayName)
	if name == "" {
		name = rsvp.DefaultGuestName
	}
	return &rsvp.Confirmation{
		Code:             code,
		DisplayName:      name,
		MaxPases:         coercePases(p.MaxPases),
		AlreadyConfirmed: p.AlreadyConfirmed,
	}, nil
}

// coercePases accepts a number or a numeric string; anything else is 0.
// Fractions truncate and negatives clamp to 0.
func coercePases(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Trunc(f))
}
