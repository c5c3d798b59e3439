package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voucherbot/internal/common/logger"
	routeresponse "voucherbot/internal/pipeline/chat/route-response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Test Helper Functions
// ==========================

type stubChat struct {
	reply    string
	panics   bool
	messages []string
}

func (s *stubChat) Execute(ctx context.Context, input *routeresponse.Input) *routeresponse.Output {
	if s.panics {
		panic("boom")
	}
	s.messages = append(s.messages, input.Message)
	return &routeresponse.Output{Response: s.reply, Route: routeresponse.RouteQuery}
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestServer(t *testing.T, chat Chatter, db Pinger) *Server {
	t.Helper()
	return New(Options{
		ServiceName: "voucherbot-test",
		Chat:        chat,
		Database:    db,
		Logger:      logger.NewTestLogger(t),
	})
}

func postForm(t *testing.T, s *Server, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/get", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// ==========================
// Chat endpoint
// ==========================

func TestChat_ReturnsResponseEnvelope(t *testing.T) {
	chat := &stubChat{reply: "📊 Result: `42`"}
	s := newTestServer(t, chat, stubPinger{})

	rec := postForm(t, s, url.Values{"msg": {"What is the total claim amount for TXN_2024001"}})

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"response": "📊 Result: `42`"}, body)
	assert.Equal(t, []string{"What is the total claim amount for TXN_2024001"}, chat.messages)
}

func TestChat_EmptyMessageIsAnswered(t *testing.T) {
	chat := &stubChat{reply: "No matching records found."}
	s := newTestServer(t, chat, stubPinger{})

	rec := postForm(t, s, url.Values{"msg": {""}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{""}, chat.messages)
}

func TestChat_MissingMessage(t *testing.T) {
	chat := &stubChat{}
	s := newTestServer(t, chat, stubPinger{})

	rec := postForm(t, s, url.Values{"text": {"hello"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.Empty(t, chat.messages)
}

func TestChat_PanicIsRecovered(t *testing.T) {
	s := newTestServer(t, &stubChat{panics: true}, stubPinger{})

	rec := postForm(t, s, url.Values{"msg": {"hi"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ==========================
// Page and probes
// ==========================

func TestHome_ServesChatPage(t *testing.T) {
	rec := get(newTestServer(t, &stubChat{}, stubPinger{}), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>Voucher Assistant</title>")
	assert.Contains(t, rec.Body.String(), `fetch("/get"`)
}

func TestProbes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		db         Pinger
		wantStatus int
		wantBody   string
	}{
		{"health", "/health", stubPinger{err: errors.New("down")}, http.StatusOK, `"alive"`},
		{"ready", "/ready", stubPinger{}, http.StatusOK, `"ready"`},
		{"not ready", "/ready", stubPinger{err: errors.New("dial tcp: connection refused")}, http.StatusServiceUnavailable, `"down"`},
		{"no database", "/ready", nil, http.StatusServiceUnavailable, `"unconfigured"`},
		{"unknown route", "/nope", stubPinger{}, http.StatusNotFound, `{"error":"not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newTestServer(t, &stubChat{}, tt.db), tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(t, &stubChat{}, stubPinger{}), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// ==========================
// Middleware
// ==========================

func TestRequestID(t *testing.T) {
	s := newTestServer(t, &stubChat{}, stubPinger{})

	rec := get(s, "/health")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "a request id is generated")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}
