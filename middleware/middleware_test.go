package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cityflow/datagen/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/datasets", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestSetupCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    string
		origin     string
		wantHeader string
	}{
		{"wildcard", "*", "http://dashboard.local", "*"},
		{"empty means wildcard", "", "http://dashboard.local", "*"},
		{"listed origin", "http://a.local, http://b.local", "http://b.local", "http://b.local"},
		{"unlisted origin", "http://a.local", "http://evil.local", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(SetupCORS(config.ServerConfig{AllowedOrigins: tt.allowed}))
			req := httptest.NewRequest(http.MethodGet, "/datasets", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter(RequestLogger(zap.New(core)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/datasets" || fields["status"] != int64(http.StatusOK) {
		t.Errorf("unexpected fields %v", fields)
	}
}
