// Package rsvp implements the guest confirmation flow: normalize the code,
// ask the remote endpoint, and turn the answer into guest-facing copy.
//
// The transport lives behind Gateway so the flow does not care whether the
// endpoint is reached through a JSONP callback or a plain JSON call.
package rsvp

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State of a submission.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateDomainError
	StateTransportError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateDomainError:
		return "domain_error"
	case StateTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DefaultBurstDelay separates the two celebration bursts.
const DefaultBurstDelay = 250 * time.Millisecond

// Outcome is what the guest sees after one submission.
type Outcome struct {
	State         State           `json:"state"`
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	ErrorCode     string          `json:"error_code,omitempty"`
	Confirmation  *Confirmation   `json:"confirmation,omitempty"`
	Celebrate     bool            `json:"celebrate"`
	Bursts        []time.Duration `json:"-"`
	BurstDelaysMs []int64         `json:"burst_delays_ms,omitempty"` // Bursts in milliseconds
}

// Celebrator plays the success flourish. Burst receives 0 for the
// immediate burst and 1 for the delayed one.
type Celebrator interface {
	Burst(n int)
}

type CelebratorFunc func(n int)

func (f CelebratorFunc) Burst(n int) { f(n) }

// Client runs submissions against a Gateway. It is safe for concurrent use;
// overlapping submissions of the same normalized code are rejected.
type Client struct {
	gw         Gateway
	celebrator Celebrator
	burstDelay time.Duration
	observer   func(code string, s State)

	mu       sync.Mutex
	inflight map[string]struct{}
}

type Option func(*Client)

func WithCelebrator(c Celebrator) Option {
	return func(cl *Client) { cl.celebrator = c }
}

func WithBurstDelay(d time.Duration) Option {
	return func(cl *Client) { cl.burstDelay = d }
}

// WithObserver receives every state transition of every submission.
func WithObserver(fn func(code string, s State)) Option {
	return func(cl *Client) { cl.observer = fn }
}

func NewClient(gw Gateway, opts ...Option) *Client {
	c := &Client{
		gw:         gw,
		burstDelay: DefaultBurstDelay,
		inflight:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit confirms raw. The returned error is only ErrSubmissionInFlight;
// every other failure is described by the Outcome.
func (c *Client) Submit(ctx context.Context, raw string) (Outcome, error) {
	code := NormalizeCode(raw)

	if code == "" {
		c.notify(code, StateDomainError)
		c.notify(code, StateIdle)
		return Outcome{
			State:     StateDomainError,
			Message:   DomainMessage(CodeMissingCode),
			ErrorCode: CodeMissingCode,
		}, nil
	}

	if !c.acquire(code) {
		return Outcome{}, ErrSubmissionInFlight
	}
	defer c.release(code)

	c.notify(code, StateSubmitting)
	out := c.submit(ctx, code)
	c.notify(code, out.State)
	c.notify(code, StateIdle)

	if out.Celebrate {
		c.celebrate()
	}
	return out, nil
}

func (c *Client) submit(ctx context.Context, code string) Outcome {
	conf, err := c.gw.Confirm(ctx, code)

	var derr *DomainError
	switch {
	case err == nil && conf != nil:
		res := *conf
		res.Code = code
		if res.DisplayName == "" {
			res.DisplayName = DefaultGuestName
		}
		if res.MaxPases < 0 {
			res.MaxPases = 0
		}
		return Outcome{
			State:         StateSuccess,
			Code:          code,
			Message:       SuccessMessage(res),
			Confirmation:  &res,
			Celebrate:     true,
			Bursts:        []time.Duration{0, c.burstDelay},
			BurstDelaysMs: []int64{0, c.burstDelay.Milliseconds()},
		}

	case errors.As(err, &derr):
		return Outcome{
			State:     StateDomainError,
			Code:      code,
			Message:   DomainMessage(derr.Code),
			ErrorCode: derr.Code,
		}

	default:
		// nil confirmation without error is a broken gateway; treat as transport
		return Outcome{
			State:   StateTransportError,
			Code:    code,
			Message: TransportMessage(),
		}
	}
}

func (c *Client) celebrate() {
	if c.celebrator == nil {
		return
	}
	c.celebrator.Burst(0)
	time.AfterFunc(c.burstDelay, func() { c.celebrator.Burst(1) })
}

func (c *Client) acquire(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[code]; busy {
		return false
	}
	c.inflight[code] = struct{}{}
	return true
}

func (c *Client) release(code string) {
	c.mu.Lock()
	delete(c.inflight, code)
	c.mu.Unlock()
}

func (c *Client) notify(code string, s State) {
	if c.observer != nil {
		c.observer(code, s)
	}
}
