package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"minihr/internal/auth"
	"minihr/internal/config"
	"minihr/internal/handler"
	"minihr/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	leaveHandler *handler.LeaveHandler,
	attendanceHandler *handler.AttendanceHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)

	// Leave routes
	secured.POST("/leaves", leaveHandler.ApplyLeave)
	secured.GET("/leaves/my", leaveHandler.MyLeaves)
	secured.PUT("/leaves/:id/cancel", leaveHandler.CancelLeave)

	// Attendance routes
	secured.POST("/attendance", attendanceHandler.MarkAttendance)
	secured.GET("/attendance/my", attendanceHandler.MyAttendance)

	// Admin routes
	adminOnly := secured.Group("", RequireAdmin)
	adminOnly.GET("/leaves", leaveHandler.ListLeaves)
	adminOnly.PUT("/leaves/:id", leaveHandler.DecideLeave)
	adminOnly.GET("/attendance", attendanceHandler.ListAttendance)
	adminOnly.GET("/users", userHandler.ListUsers)
	adminOnly.GET("/users/:id", userHandler.GetUser)
	adminOnly.GET("/reports/monthly", reportHandler.MonthlyReport)
}

// RequireAdmin rejects requests whose JWT does not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
