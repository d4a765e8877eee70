package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tablebooker/config"

	"github.com/gin-gonic/gin"
)

func newTestContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "forwarded chain first entry wins behind a trusted proxy",
			trustProxy: true,
			remoteAddr: "10.0.0.1:4821",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			want:       "203.0.113.9",
		},
		{
			name:       "real ip header behind a trusted proxy",
			trustProxy: true,
			remoteAddr: "10.0.0.1:4821",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "spoofed header ignored without a trusted proxy",
			trustProxy: false,
			remoteAddr: "198.51.100.7:4821",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9"},
			want:       "198.51.100.7",
		},
		{
			name:       "garbage forwarded value falls through to the socket address",
			trustProxy: true,
			remoteAddr: "198.51.100.7:4821",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "198.51.100.7",
		},
		{
			name:       "port stripped from the remote address",
			trustProxy: true,
			remoteAddr: "198.51.100.7:4821",
			want:       "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := config.AppConfig.TrustProxyHeaders
			config.AppConfig.TrustProxyHeaders = tt.trustProxy
			defer func() { config.AppConfig.TrustProxyHeaders = prev }()

			if got := clientIP(newTestContext(tt.remoteAddr, tt.headers)); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
