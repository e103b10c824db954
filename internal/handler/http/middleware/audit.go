package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/audit"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

// AuditTrail records every mutating request in the audit log: who did what,
// from where, and how it ended. Reads are not recorded.
func AuditTrail(repo audit.Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			entry := audit.Entry{
				Action:      fmt.Sprintf("%s %s", r.Method, routePattern(r)),
				OccurredAt:  time.Now(),
				UserAgent:   r.UserAgent(),
				Description: fmt.Sprintf("%s %s -> %d", r.Method, r.URL.Path, ww.Status()),
			}

			if ip := clientIP(r); ip != "" {
				entry.IPAddress = &ip
			}
			if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
				if userID, ok := claims["user_id"].(string); ok && userID != "" {
					entry.UserID = &userID
				}
			}

			// Off the request path; a failed write must not fail the request.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := repo.Create(ctx, entry); err != nil {
					logger.Error("failed to record audit entry", "action", entry.Action, "error", err)
				}
			}()
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For grows one element per proxy hop; the first one is the
	// originating client.
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
