package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/corehr/hr-backend-go/internal/config"
	"github.com/corehr/hr-backend-go/internal/domain/audit"
	"github.com/corehr/hr-backend-go/internal/handler/http/middleware"
	"github.com/corehr/hr-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	Config       *config.Config
	JWTService   jwt.Service
	AuditRepo    audit.Repository
	Auth         AuthHandler
	User         UserHandler
	Leave        LeaveHandler
	Document     DocumentHandler
	Notification NotificationHandler
	Audit        AuditHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Config.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.RefreshToken)
			r.Post("/logout", deps.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", deps.Auth.LoginWithGoogle)
				r.Route("/callback", func(r chi.Router) {
					r.Get("/google", deps.Auth.OAuthCallbackGoogle)
				})
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))
				r.Post("/change-password", deps.Auth.ChangePassword)
			})
		})

		// EventSource clients cannot send an Authorization header, so the
		// stream authenticates with a short-lived query token instead.
		r.Get("/notifications/stream", deps.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuditTrail(deps.AuditRepo, logger))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", deps.User.GetMe)
				r.Get("/{id}", deps.User.GetUser)
				r.Put("/{id}", deps.User.UpdateUser)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", deps.User.ListUsers)
					r.Post("/", deps.User.CreateUser)
					r.Delete("/{id}", deps.User.DeactivateUser)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", deps.User.ListRoles)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.User.CreateRole)
					r.Put("/{id}", deps.User.UpdateRole)
					r.Delete("/{id}", deps.User.DeleteRole)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", deps.Leave.ListLeaveTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.Leave.CreateLeaveType)
					r.Put("/{id}", deps.Leave.UpdateLeaveType)
					r.Delete("/{id}", deps.Leave.DeleteLeaveType)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", deps.Leave.ListLeaves)
				r.Post("/", deps.Leave.CreateLeave)
				r.Get("/calendar", deps.Leave.Calendar)
				r.Get("/{id}", deps.Leave.GetLeave)
				r.Put("/{id}", deps.Leave.UpdateLeave)
				r.Delete("/{id}", deps.Leave.DeleteLeave)
				r.Post("/{id}/cancel", deps.Leave.CancelLeave)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", deps.Leave.ApproveLeave)
					r.Post("/{id}/reject", deps.Leave.RejectLeave)
				})
			})

			r.Route("/document-types", func(r chi.Router) {
				r.Get("/", deps.Document.ListDocumentTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.Document.CreateDocumentType)
					r.Put("/{id}", deps.Document.UpdateDocumentType)
					r.Delete("/{id}", deps.Document.DeleteDocumentType)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", deps.Document.ListDocuments)
				r.Get("/{id}", deps.Document.GetDocument)
				r.Post("/{id}/acknowledge", deps.Document.Acknowledge)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.Document.CreateDocument)
					r.Delete("/{id}", deps.Document.DeleteDocument)
				})
			})

			r.Route("/personal-documents", func(r chi.Router) {
				r.Get("/", deps.Document.ListPersonalDocuments)
				r.Post("/", deps.Document.CreatePersonalDocument)
				r.Get("/{id}", deps.Document.GetPersonalDocument)
				r.Put("/{id}", deps.Document.UpdatePersonalDocument)
				r.Delete("/{id}", deps.Document.DeletePersonalDocument)
				r.Post("/{id}/ack-expiry", deps.Document.AckExpiry)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", deps.Notification.List)
				r.Get("/unread-count", deps.Notification.UnreadCount)
				r.Get("/stream-token", deps.Notification.GetStreamToken)
				r.Post("/mark-read", deps.Notification.MarkAsRead)
				r.Post("/mark-all-read", deps.Notification.MarkAllAsRead)
				r.Delete("/{id}", deps.Notification.Delete)
			})

			// Admin only
			r.Route("/audit-log", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", deps.Audit.List)
			})
		})
	})

	return r
}
