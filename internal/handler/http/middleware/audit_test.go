package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr with port", "10.0.0.1:54321", "", "10.0.0.1"},
		{"remote addr without port", "10.0.0.1", "", "10.0.0.1"},
		{"single forwarded entry", "10.0.0.1:54321", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain keeps originating client", "10.0.0.1:54321", "203.0.113.7, 198.51.100.2, 10.0.0.1", "203.0.113.7"},
		{"forwarded chain with spacing", "10.0.0.1:54321", " 203.0.113.7 ,198.51.100.2", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
