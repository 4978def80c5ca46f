package main

import (
	"context"
	"log"
	"net/http"

	"minihr/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"minihr/internal/auth"
	"minihr/internal/cache"
	"minihr/internal/config"
	"minihr/internal/db"
	"minihr/internal/handler"
	"minihr/internal/mailer"
	"minihr/internal/model"
	"minihr/internal/repository"
	"minihr/internal/router"
	"minihr/internal/service"
)

// @title Mini HR API
// @version 1.0
// @description HR backend with attendance tracking, leave accounting, and monthly reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.LeaveRequest{},
		&model.Attendance{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if !cacheClient.Ping(context.Background()) {
		log.Println("redis unreachable, caching and refresh tokens degraded")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	leaveRepo := repository.NewLeaveRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize notification sender (nil when mail is not configured)
	notifier := mailer.New(cfg)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	leaveService := service.NewLeaveService(userRepo, leaveRepo, txManager, cacheClient, notifier)
	attendanceService := service.NewAttendanceService(attendanceRepo)
	reportService := service.NewReportService(userRepo, attendanceRepo, leaveRepo, cacheClient)

	// Seed bootstrap admin when configured
	if err := authService.SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("seed admin: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	reportHandler := handler.NewReportHandler(reportService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		leaveHandler,
		attendanceHandler,
		reportHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
