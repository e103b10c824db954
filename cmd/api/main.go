package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corehr/hr-backend-go/internal/config"
	appHTTP "github.com/corehr/hr-backend-go/internal/handler/http"
	"github.com/corehr/hr-backend-go/internal/pkg/cron"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/corehr/hr-backend-go/internal/pkg/jwt"
	"github.com/corehr/hr-backend-go/internal/pkg/oauth"
	"github.com/corehr/hr-backend-go/internal/pkg/sse"
	"github.com/corehr/hr-backend-go/internal/pkg/storage"
	"github.com/corehr/hr-backend-go/internal/repository/postgresql"
	authService "github.com/corehr/hr-backend-go/internal/service/auth"
	documentService "github.com/corehr/hr-backend-go/internal/service/document"
	"github.com/corehr/hr-backend-go/internal/service/file"
	leaveService "github.com/corehr/hr-backend-go/internal/service/leave"
	notificationService "github.com/corehr/hr-backend-go/internal/service/notification"
	userService "github.com/corehr/hr-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRecordRepo := postgresql.NewLeaveRecordRepository(db)
	documentTypeRepo := postgresql.NewDocumentTypeRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	personalDocumentRepo := postgresql.NewPersonalDocumentRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileSvc := file.NewFileService(fileStorage)

	hub := sse.NewHub()
	notifier := notificationService.NewNotificationService(
		notificationRepo,
		hub,
		slog.Default(),
		notificationService.Config{},
	)

	txRunner := postgresql.NewTxRunner(db)

	authSvc := authService.NewAuthService(txRunner, userRepo, jwtService, jwtRepo)
	userSvc := userService.NewUserService(userRepo, roleRepo)
	leaveSvc := leaveService.NewLeaveService(txRunner, leaveTypeRepo, leaveRecordRepo, userRepo, notifier)
	documentSvc := documentService.NewDocumentService(
		txRunner,
		documentTypeRepo,
		documentRepo,
		assignmentRepo,
		personalDocumentRepo,
		userRepo,
		fileSvc,
		notifier,
	)

	scheduler := cron.NewScheduler(slog.Default())
	documentJobs := cron.NewDocumentJobs(personalDocumentRepo, assignmentRepo, notifier, cfg.Sweep)
	documentJobs.RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:       cfg,
		JWTService:   jwtService,
		AuditRepo:    auditRepo,
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService),
		User:         appHTTP.NewUserHandler(userSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Document:     appHTTP.NewDocumentHandler(documentSvc),
		Notification: appHTTP.NewNotificationHandler(notifier, jwtService),
		Audit:        appHTTP.NewAuditHandler(auditRepo),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	notifier.Stop()
}
