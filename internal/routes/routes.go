package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/auth"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/handlers"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	accountuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/account"
	cataloguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/catalog"
	paymentuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/payment"
	ratinguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/scheduling"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Scheduling *scheduling.Service
	Ratings    *ratinguc.Service
	Accounts   *accountuc.Service
	Catalog    *cataloguc.Service
	Payments   *paymentuc.Service
	Audit      *audit.Logger

	Tokens   *auth.Tokens
	Metrics  *metrics.Collector
	Log      *zap.Logger
	Location *time.Location

	RateLimitPerMin int
	CORSOrigins     []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recover(d.Log),
		middleware.Logger(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.CORSMiddleware(d.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Accounts, d.Location)
	profileHandler := handlers.NewProfileHandler(d.Accounts, d.Location)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.Accounts)
	serviceHandler := handlers.NewServiceHandler(d.Catalog)
	appointmentHandler := handlers.NewAppointmentHandler(d.Scheduling, d.Location)
	ratingHandler := handlers.NewRatingHandler(d.Ratings, d.Location)
	paymentHandler := handlers.NewPaymentHandler(d.Payments, d.Location)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Audit)

	limiter := middleware.NewRateLimiter(d.RateLimitPerMin)

	api := r.Group("/api")
	api.Use(limiter.Middleware(d.Log))

	// ======================================================
	// PUBLIC
	// ======================================================
	api.POST("/register/", authHandler.Register)
	api.POST("/login/", authHandler.Login)

	api.GET("/profiles/barbers/", profileHandler.Barbers)

	public := api.Group("/services")
	public.Use(middleware.OptionalAuth(d.Tokens))
	{
		public.GET("/", serviceHandler.List)
		public.GET("/popular/", serviceHandler.Popular)
		public.GET("/:id/", serviceHandler.Get)
	}

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	authGroup := api.Group("/")
	authGroup.Use(middleware.AuthMiddleware(d.Tokens))

	staff := middleware.RequireRole(models.RoleBarber, models.RoleAdmin)
	barberOnly := middleware.RequireRole(models.RoleBarber)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	authGroup.POST("/services/", staff, serviceHandler.Create)
	authGroup.PUT("/services/:id/", staff, serviceHandler.Update)
	authGroup.DELETE("/services/:id/", staff, serviceHandler.Delete)

	authGroup.GET("/profiles/me/", profileHandler.Me)
	authGroup.PUT("/profiles/me/avatar/", barberOnly, profileHandler.Avatar)
	authGroup.PATCH("/profiles/:id/toggle_active/", adminOnly, profileHandler.ToggleActive)

	authGroup.GET("/schedules/my_schedule/", barberOnly, workingHoursHandler.Get)
	authGroup.PUT("/schedules/my_schedule/", barberOnly, workingHoursHandler.Update)

	appointments := authGroup.Group("/appointments")
	{
		appointments.POST("/check_availability/", appointmentHandler.CheckAvailability)
		appointments.POST("/", appointmentHandler.Create)
		appointments.GET("/", appointmentHandler.List)
		appointments.GET("/upcoming/", appointmentHandler.Upcoming)
		appointments.GET("/history/", appointmentHandler.History)
		appointments.GET("/stats/", appointmentHandler.Stats)
		appointments.GET("/:id/", appointmentHandler.Get)
		appointments.PATCH("/:id/reschedule/", appointmentHandler.Reschedule)
		appointments.PATCH("/:id/cancel/", appointmentHandler.Cancel)
		appointments.PATCH("/:id/complete/", appointmentHandler.Complete)
	}

	ratings := authGroup.Group("/ratings")
	{
		ratings.POST("/", ratingHandler.Create)
		ratings.GET("/my_ratings/", ratingHandler.MyRatings)
		ratings.GET("/barber_stats/", ratingHandler.BarberStats)
	}

	payments := authGroup.Group("/payments")
	{
		payments.POST("/", paymentHandler.Create)
		payments.GET("/", paymentHandler.List)
		payments.GET("/stats/", paymentHandler.Stats)
		payments.PATCH("/:id/mark_paid/", paymentHandler.MarkPaid)
	}

	authGroup.GET("/audit-logs/", adminOnly, auditLogsHandler.List)
}
