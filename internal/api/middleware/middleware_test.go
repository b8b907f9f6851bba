package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/ricotte-api/internal/api/response"
	"github.com/mcoot/ricotte-api/internal/testutil"
)

var noop = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

func TestHeaders_EchoesOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()

	Headers()(noop).ServeHTTP(rr, req)

	assert.Equal(t, response.ContentTypeJSON, rr.Header().Get("Content-Type"))
	assert.Equal(t, "https://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestHeaders_NoOrigin(t *testing.T) {
	rr := httptest.NewRecorder()

	Headers()(noop).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAccessToken(t *testing.T) {
	var token string
	var err error
	h := AccessToken()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err = GetAccessToken(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.EqualError(t, err, "No Authorization header")
	assert.Empty(t, token)
}

func TestTimeout(t *testing.T) {
	var deadline bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	})

	Timeout(0)(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, deadline)

	Timeout(time.Second)(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, deadline)
}

func TestRecovery_RendersJSON(t *testing.T) {
	logger := testutil.NopLogger()
	h := Recovery(logger, response.NewRenderer(logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/attack/a/1/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
}
