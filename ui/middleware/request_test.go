package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"rateorder/internal"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(logger *internal.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func TestRequestID(t *testing.T) {
	r := newRouter(internal.NewLogger(internal.LogLevelError))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := internal.NewLogger(internal.LogLevelWarn)
	logger.SetOutput(&buf)
	r := newRouter(logger)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Contains(t, buf.String(), "[WARN] [HTTP] GET /fail -> 500")
}
