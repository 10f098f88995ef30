package rsvp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls []string
	conf  *Confirmation
	err   error
	block chan struct{}
}

func (f *fakeGateway) Confirm(ctx context.Context, code string) (*Confirmation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, code)
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, &TransportError{Op: "confirm", Err: ctx.Err()}
		}
	}
	return f.conf, f.err
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type recordingCelebrator struct {
	mu     sync.Mutex
	bursts []int
}

func (r *recordingCelebrator) Burst(n int) {
	r.mu.Lock()
	r.bursts = append(r.bursts, n)
	r.mu.Unlock()
}

func (r *recordingCelebrator) Bursts() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.bursts...)
}

func TestNormalizeCode(t *testing.T) {
	tests := map[string]string{
		"abc123":        "ABC123",
		"  ab c\t1 2\n": "ABC12",
		"":              "",
		" \t\n ":        "",
		"mArÍa-01":      "MARÍA-01",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCode(in), "input %q", in)
	}
}

func TestSubmit_EmptyCodeNeverCallsGateway(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		gw := &fakeGateway{}
		cel := &recordingCelebrator{}
		c := NewClient(gw, WithCelebrator(cel))

		out, err := c.Submit(context.Background(), raw)
		require.NoError(t, err)

		assert.Equal(t, StateDomainError, out.State)
		assert.Equal(t, CodeMissingCode, out.ErrorCode)
		assert.Equal(t, DomainMessage(CodeMissingCode), out.Message)
		assert.Empty(t, gw.Calls())
		assert.Empty(t, cel.Bursts())
	}
}

func TestSubmit_DomainErrorNotFound(t *testing.T) {
	gw := &fakeGateway{err: &DomainError{Code: CodeNotFound}}
	cel := &recordingCelebrator{}
	c := NewClient(gw, WithCelebrator(cel), WithBurstDelay(time.Millisecond))

	out, err := c.Submit(context.Background(), " xy 12 ")
	require.NoError(t, err)

	assert.Equal(t, StateDomainError, out.State)
	assert.Equal(t, CodeNotFound, out.ErrorCode)
	assert.Equal(t, DomainMessage(CodeNotFound), out.Message)
	assert.False(t, out.Celebrate)
	assert.Equal(t, []string{"XY12"}, gw.Calls())

	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, cel.Bursts())
}

func TestSubmit_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{CodeNotFound, msgNotFound},
		{CodeInactiveCode, msgInactive},
		{CodeMissingCode, msgMissing},
		{"QUOTA_EXCEEDED", msgGeneric},
		{"", msgGeneric},
	}
	for _, tt := range tests {
		c := NewClient(&fakeGateway{err: &DomainError{Code: tt.code}})
		out, err := c.Submit(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, tt.want, out.Message, "code %q", tt.code)
	}
}

func TestSubmit_SuccessCelebratesTwice(t *testing.T) {
	gw := &fakeGateway{conf: &Confirmation{DisplayName: "Maria", MaxPases: 2}}
	cel := &recordingCelebrator{}
	c := NewClient(gw, WithCelebrator(cel), WithBurstDelay(20*time.Millisecond))

	out, err := c.Submit(context.Background(), "maria01")
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, out.State)
	assert.Contains(t, out.Message, "Maria")
	assert.Contains(t, out.Message, "2 pases")
	assert.True(t, out.Celebrate)
	assert.Equal(t, []time.Duration{0, 20 * time.Millisecond}, out.Bursts)
	assert.Equal(t, []int64{0, 20}, out.BurstDelaysMs)
	require.NotNil(t, out.Confirmation)
	assert.Equal(t, "MARIA01", out.Confirmation.Code)

	// immediate burst already fired, delayed one has not
	assert.Equal(t, []int{0}, cel.Bursts())

	require.Eventually(t, func() bool { return len(cel.Bursts()) == 2 }, time.Second, time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []int{0, 1}, cel.Bursts())
}

func TestSubmit_SuccessDefaults(t *testing.T) {
	c := NewClient(&fakeGateway{conf: &Confirmation{MaxPases: -3}})

	out, err := c.Submit(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, DefaultGuestName, out.Confirmation.DisplayName)
	assert.Equal(t, 0, out.Confirmation.MaxPases)
	assert.Contains(t, out.Message, "Invitado")
	assert.Contains(t, out.Message, "0 pases")
}

func TestSuccessMessage_Branches(t *testing.T) {
	single := SuccessMessage(Confirmation{DisplayName: "Luis", MaxPases: 1})
	assert.Contains(t, single, "Tienes 1 pase.")

	plural := SuccessMessage(Confirmation{DisplayName: "Luis", MaxPases: 3})
	assert.Contains(t, plural, "Tienes 3 pases.")

	again := SuccessMessage(Confirmation{DisplayName: "Luis", MaxPases: 1, AlreadyConfirmed: true})
	assert.Contains(t, again, "ya estaba confirmada")
	assert.Contains(t, again, "1 pase reservado.")

	againPlural := SuccessMessage(Confirmation{DisplayName: "Luis", MaxPases: 2, AlreadyConfirmed: true})
	assert.Contains(t, againPlural, "2 pases reservados.")
}

func TestSubmit_TransportError(t *testing.T) {
	gw := &fakeGateway{err: &TransportError{Op: "request", Err: errors.New("connection refused")}}
	cel := &recordingCelebrator{}
	c := NewClient(gw, WithCelebrator(cel))

	out, err := c.Submit(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, StateTransportError, out.State)
	assert.Equal(t, TransportMessage(), out.Message)
	assert.Empty(t, out.ErrorCode)
	assert.Empty(t, cel.Bursts())
}

func TestSubmit_TimeoutIsTransportError(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})}
	c := NewClient(gw)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	out, err := c.Submit(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, StateTransportError, out.State)
}

func TestSubmit_ObserverSeesTransitions(t *testing.T) {
	var states []State
	c := NewClient(
		&fakeGateway{conf: &Confirmation{DisplayName: "Ana", MaxPases: 1}},
		WithObserver(func(_ string, s State) { states = append(states, s) }),
	)

	_, err := c.Submit(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []State{StateSubmitting, StateSuccess, StateIdle}, states)

	states = nil
	_, err = c.Submit(context.Background(), " ")
	require.NoError(t, err)
	assert.Equal(t, []State{StateDomainError, StateIdle}, states)
}

func TestSubmit_OverlappingSameCodeRejected(t *testing.T) {
	gw := &fakeGateway{conf: &Confirmation{DisplayName: "Ana", MaxPases: 1}, block: make(chan struct{})}
	c := NewClient(gw)

	first := make(chan Outcome)
	go func() {
		out, _ := c.Submit(context.Background(), "abc")
		first <- out
	}()

	require.Eventually(t, func() bool { return len(gw.Calls()) == 1 }, time.Second, time.Millisecond)

	_, err := c.Submit(context.Background(), " a b c ")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(gw.block)
	out := <-first
	assert.Equal(t, StateSuccess, out.State)

	// released after completion
	out, err = c.Submit(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, out.State)
	assert.Len(t, gw.Calls(), 2)
}

func TestSubmit_DifferentCodesRunConcurrently(t *testing.T) {
	gw := &fakeGateway{conf: &Confirmation{DisplayName: "Ana", MaxPases: 1}, block: make(chan struct{})}
	c := NewClient(gw)

	var wg sync.WaitGroup
	for _, code := range []string{"aaa", "bbb"} {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			_, err := c.Submit(context.Background(), code)
			assert.NoError(t, err)
		}(code)
	}

	require.Eventually(t, func() bool { return len(gw.Calls()) == 2 }, time.Second, time.Millisecond)
	close(gw.block)
	wg.Wait()
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "transport_error", StateTransportError.String())
	assert.Equal(t, "unknown", State(99).String())
}
