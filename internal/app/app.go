package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/unisolve/backend/internal/config"
	"github.com/unisolve/backend/internal/db"
	"github.com/unisolve/backend/internal/repository"
	"github.com/unisolve/backend/internal/service"
	"github.com/unisolve/backend/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Location            *time.Location
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	EmailService        *service.EmailService
	PostService         *service.PostService
	CommentService      *service.CommentService
	UserService         *service.UserService
	UniversityService   *service.UniversityService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	postRepository := repository.NewPostRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	universityRepository := repository.NewUniversityRepository(database)

	// Storage
	imageStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	verificationService := service.NewVerificationService(emailService, cfg.VerificationCodeTTL)
	postService := service.NewPostService(postRepository, commentRepository, imageStorage)
	commentService := service.NewCommentService(commentRepository)
	userService := service.NewUserService(userRepository)
	universityService := service.NewUniversityService(universityRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Location:            cfg.Location(),
		AuthService:         authService,
		VerificationService: verificationService,
		EmailService:        emailService,
		PostService:         postService,
		CommentService:      commentService,
		UserService:         userService,
		UniversityService:   universityService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
