package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinginvite/internal/config"
	"weddinginvite/internal/countdown"
	"weddinginvite/internal/pdf"
	"weddinginvite/internal/rsvp"
	"weddinginvite/internal/services"
)

var target = time.Date(2026, 3, 14, 17, 30, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, now time.Time, interval time.Duration) *countdown.Engine {
	t.Helper()
	e, err := countdown.New(target,
		countdown.WithInterval(interval),
		countdown.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)
	return e
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCountdownHandler_Get(t *testing.T) {
	h := NewCountdownHandler(newEngine(t, target.Add(-(26*time.Hour + 5*time.Second)), time.Second))
	r := gin.New()
	r.GET("/api/countdown", h.Get)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/countdown", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Target   string             `json:"target"`
		Snapshot countdown.Snapshot `json:"snapshot"`
		Display  countdown.Display  `json:"display"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-14T17:30:00Z", body.Target)
	assert.Equal(t, countdown.Snapshot{Days: 1, Hours: 2, Minutes: 0, Seconds: 5}, body.Snapshot)
	assert.Equal(t, countdown.Display{Days: "1", Hours: "02", Minutes: "00", Seconds: "05"}, body.Display)
}

func TestCountdownHandler_StreamEndsWhenDone(t *testing.T) {
	h := NewCountdownHandler(newEngine(t, target.Add(time.Minute), 5*time.Millisecond))
	r := gin.New()
	r.GET("/stream", h.Stream)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, 1, strings.Count(w.Body.String(), "event:tick"))
	assert.Contains(t, w.Body.String(), `"done":true`)
}

func TestCountdownHandler_StreamStopsOnDisconnect(t *testing.T) {
	h := NewCountdownHandler(newEngine(t, target.Add(-time.Hour), 5*time.Millisecond))
	r := gin.New()
	r.GET("/stream", h.Stream)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- serve(r, req) }()

	select {
	case w := <-done:
		assert.GreaterOrEqual(t, strings.Count(w.Body.String(), "event:tick"), 2)
		assert.NotContains(t, w.Body.String(), `"done":true`)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the client went away")
	}
}

func gatewayReturning(conf *rsvp.Confirmation, err error) rsvp.Gateway {
	return rsvp.GatewayFunc(func(ctx context.Context, code string) (*rsvp.Confirmation, error) {
		if conf == nil {
			return nil, err
		}
		c := *conf
		c.Code = code
		return &c, nil
	})
}

func rsvpRouter(gw rsvp.Gateway, passes *services.PassService) *gin.Engine {
	svc := services.NewRSVPService(rsvp.NewClient(gw), passes, "http://localhost", nil)
	r := gin.New()
	r.POST("/api/rsvp/confirm", NewRSVPHandler(svc).Confirm)
	return r
}

func postConfirm(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/rsvp/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(r, req)
}

func TestRSVPHandler_Success(t *testing.T) {
	passes := services.NewPassService("secret", time.Now().Add(time.Hour))
	r := rsvpRouter(gatewayReturning(&rsvp.Confirmation{DisplayName: "Maria", MaxPases: 2}, nil), passes)

	w := postConfirm(r, `{"code":" maria01 "}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		State         string             `json:"state"`
		Code          string             `json:"code"`
		Message       string             `json:"message"`
		Celebrate     bool               `json:"celebrate"`
		Confirmation  *rsvp.Confirmation `json:"confirmation"`
		PassURL       string             `json:"pass_url"`
		BurstDelaysMs []int64            `json:"burst_delays_ms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "success", res.State)
	assert.Equal(t, "MARIA01", res.Code)
	assert.Contains(t, res.Message, "Maria")
	assert.True(t, res.Celebrate)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, 2, res.Confirmation.MaxPases)
	assert.True(t, strings.HasPrefix(res.PassURL, "http://localhost/api/passes/"))
	assert.Equal(t, []int64{0, rsvp.DefaultBurstDelay.Milliseconds()}, res.BurstDelaysMs)
}

func TestRSVPHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		body     string
		want     int
		wantCode string
	}{
		{"not found", &rsvp.DomainError{Code: rsvp.CodeNotFound}, `{"code":"x"}`, http.StatusNotFound, rsvp.CodeNotFound},
		{"inactive", &rsvp.DomainError{Code: rsvp.CodeInactiveCode}, `{"code":"x"}`, http.StatusGone, rsvp.CodeInactiveCode},
		{"other domain", &rsvp.DomainError{Code: "WHATEVER"}, `{"code":"x"}`, http.StatusBadRequest, "WHATEVER"},
		{"missing code", nil, `{"code":"   "}`, http.StatusBadRequest, rsvp.CodeMissingCode},
		{"transport", &rsvp.TransportError{Op: "request", Err: errors.New("refused")}, `{"code":"x"}`, http.StatusBadGateway, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rsvpRouter(gatewayReturning(nil, tt.err), nil)

			w := postConfirm(r, tt.body)
			assert.Equal(t, tt.want, w.Code)

			var res struct {
				ErrorCode string `json:"error_code"`
				Message   string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.wantCode, res.ErrorCode)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestRSVPHandler_BadJSON(t *testing.T) {
	r := rsvpRouter(gatewayReturning(nil, errors.New("unused")), nil)

	w := postConfirm(r, `{"code":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestRSVPHandler_InFlightConflict(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := rsvp.GatewayFunc(func(ctx context.Context, code string) (*rsvp.Confirmation, error) {
		close(started)
		<-release
		return &rsvp.Confirmation{Code: code, DisplayName: "Ana", MaxPases: 1}, nil
	})
	r := rsvpRouter(gw, nil)

	first := make(chan int)
	go func() { first <- postConfirm(r, `{"code":"abc"}`).Code }()
	<-started

	w := postConfirm(r, `{"code":"ABC"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "IN_FLIGHT")

	close(release)
	assert.Equal(t, http.StatusOK, <-first)
}

func TestPassHandler(t *testing.T) {
	wedding := config.WeddingConfig{Couple: "Ana & Luis", Date: "14 Marzo del 2026", Venue: "Villa Fiorenza"}
	passes := services.NewPassService("secret", time.Now().Add(time.Hour))
	token, err := passes.Issue(rsvp.Confirmation{Code: "MARIA01", DisplayName: "María", MaxPases: 2})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/passes/:token", NewPassHandler(passes, pdf.NewPassGenerator(""), wedding).Download)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/passes/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pase-MARIA01.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/passes/not-a-token", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPassHandler_Disabled(t *testing.T) {
	r := gin.New()
	r.GET("/api/passes/:token", NewPassHandler(nil, pdf.NewPassGenerator(""), config.WeddingConfig{}).Download)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/passes/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type failingGenerator struct{}

func (failingGenerator) GeneratePass(_ io.Writer, _ pdf.PassData) error {
	return errors.New("boom")
}

func TestPassHandler_GeneratorError(t *testing.T) {
	passes := services.NewPassService("secret", time.Now().Add(time.Hour))
	token, err := passes.Issue(rsvp.Confirmation{Code: "A"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/passes/:token", NewPassHandler(passes, failingGenerator{}, config.WeddingConfig{}).Download)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/passes/"+token, nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestInvitationHandler(t *testing.T) {
	r := gin.New()
	r.GET("/api/invitation", NewInvitationHandler(config.WeddingConfig{
		Couple:   "Andy & Dany",
		Venue:    "Villa Fiorenza",
		MapsURL:  "https://maps.example.com",
		Ceremony: "12h30",
		Deadline: "15 de Enero",
	}).Get)
	r.GET("/health", Health)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/invitation", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var inv map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "Andy & Dany", inv["couple"])
	assert.Equal(t, "15 de Enero", inv["rsvp_deadline"])
	assert.Equal(t, []any{}, inv["tips"])
	assert.Equal(t, "Villa Fiorenza", inv["venue"].(map[string]any)["name"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
