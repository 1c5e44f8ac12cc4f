package v1

import (
	"net/http"

	"dayhub-backend/config"
	"dayhub-backend/internal/delivery/http/middleware"
	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/auth"
	"dayhub-backend/pkg/geo"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	InterpreterUC  domain.InterpreterUsecase
	CSVUC          domain.CSVUsecase
	AuthUC         domain.AuthUsecase
	ReviewUC       domain.ReviewUsecase
	BookingUC      domain.BookingUsecase
	SavedSearchUC  domain.SavedSearchUsecase
	AvailabilityUC domain.AvailabilityUsecase
	UploadUC       domain.UploadUsecase
	Geocoder       geo.Geocoder
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginLimiter := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig())
	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	// Authenticated groups
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Config), middleware.RequireRole(auth.RoleAdmin))

	me := v1.Group("/me")
	me.Use(middleware.AuthMiddleware(deps.Config), middleware.RequireRole(auth.RoleInterpreter))

	// Public routes
	NewInterpreterHandler(v1, deps.InterpreterUC, deps.Geocoder, deps.Config)
	NewReviewHandler(v1, deps.ReviewUC)
	NewBookingHandler(v1, deps.BookingUC)
	NewSavedSearchHandler(v1, deps.SavedSearchUC)
	NewAuthHandler(v1, protected, deps.AuthUC, loginLimiter)

	// Admin and self-service routes
	NewAdminHandler(admin, deps.InterpreterUC, deps.CSVUC, deps.ReviewUC, deps.BookingUC)
	NewProfileHandler(v1, me, deps.InterpreterUC, deps.AvailabilityUC, deps.BookingUC, deps.UploadUC, uploadLimiter)

	return r
}
