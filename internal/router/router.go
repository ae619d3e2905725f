package router

import (
	"time"

	"gig-marketplace/backend/internal/config"
	"gig-marketplace/backend/internal/handlers"
	"gig-marketplace/backend/internal/middleware"
	"gig-marketplace/backend/internal/monitoring"
	"gig-marketplace/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies carries everything the route table needs. The caller owns
// construction so tests can swap in mock services.
type Dependencies struct {
	DB                  *gorm.DB
	Config              *config.Config
	Monitor             *monitoring.Monitor
	RegisterService     services.RegisterService
	AuthService         services.AuthService
	OTPService          services.OTPService
	UserService         services.UserService
	TaskService         services.TaskService
	OfferService        services.OfferService
	QuestionService     services.QuestionService
	NotificationService services.NotificationService
}

func Setup(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if deps.Config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(deps.Config.RateLimit)
		r.Use(limiter.Middleware())
	}

	if deps.Monitor != nil {
		r.Use(deps.Monitor.Middleware())
		r.GET("/health", deps.Monitor.HealthHandler())
		r.GET("/ready", deps.Monitor.ReadinessHandler())
		r.GET("/live", deps.Monitor.LivenessHandler())
		r.GET("/metrics", deps.Monitor.MetricsHandler())
	}

	r.Static(deps.Config.Upload.PublicPath, deps.Config.Upload.Dir)

	registerHandler := handlers.NewRegisterHandler(deps.DB, deps.RegisterService, deps.Config.Upload)
	authHandler := handlers.NewAuthHandler(deps.DB, deps.AuthService)
	verificationHandler := handlers.NewVerificationHandler(deps.DB, deps.OTPService)
	userHandler := handlers.NewUserHandler(deps.DB, deps.UserService, deps.Config.Upload)
	taskHandler := handlers.NewTaskHandler(deps.DB, deps.TaskService)
	offerHandler := handlers.NewOfferHandler(deps.DB, deps.OfferService)
	questionHandler := handlers.NewQuestionHandler(deps.DB, deps.QuestionService)
	notificationHandler := handlers.NewNotificationHandler(deps.DB, deps.NotificationService)

	authz := middleware.AuthzMiddleware(deps.Config.Auth.JWTSecret)

	users := r.Group("/api/users")
	{
		users.POST("/register", registerHandler.Registration)
		users.POST("/login", authHandler.Login)
		users.POST("/verify-otp", verificationHandler.VerifyOTP)
		users.POST("/resend-otp", verificationHandler.ResendOTP)
		users.POST("/reset-password", verificationHandler.ResetPassword)
		users.GET("/:id/profile", userHandler.GetPublicProfile)

		authed := users.Group("")
		authed.Use(authz)
		{
			authed.GET("/profile", userHandler.GetProfile)
			authed.PUT("/profile", userHandler.UpdateProfile)
			authed.PUT("/email", userHandler.RequestEmailChange)
			authed.POST("/email/confirm", userHandler.ConfirmEmailChange)
			authed.PUT("/password", userHandler.ChangePassword)
		}
	}

	tasks := r.Group("/api/tasks")
	{
		tasks.GET("", taskHandler.GetTasks)
		tasks.GET("/featured", taskHandler.GetFeaturedTasks)

		authed := tasks.Group("")
		authed.Use(authz)
		{
			authed.POST("", taskHandler.CreateTask)
			authed.GET("/my-tasks", taskHandler.GetMyTasks)
			authed.GET("/:id", taskHandler.GetTaskByID)
			authed.PUT("/:id", taskHandler.UpdateTask)
			authed.PUT("/:id/assign", taskHandler.AssignTask)
			authed.PUT("/:id/cancel", taskHandler.CancelTask)
		}
	}

	offers := r.Group("/api/offers")
	offers.Use(authz)
	{
		offers.POST("", offerHandler.CreateOffer)
		offers.GET("/task/:taskId", offerHandler.GetOffersForTask)
		offers.GET("/my-offers", offerHandler.GetMyOffers)
		offers.GET("/:offerId", offerHandler.GetOfferByID)
		offers.PUT("/:offerId/accept", offerHandler.AcceptOffer)
	}

	questions := r.Group("/api/questions")
	{
		questions.GET("/task/:taskId", questionHandler.GetQuestionsForTask)

		authed := questions.Group("")
		authed.Use(authz)
		{
			authed.POST("", questionHandler.AskQuestion)
			authed.PUT("/:id/answer", questionHandler.AnswerQuestion)
		}
	}

	notifications := r.Group("/api/notifications")
	{
		notifications.POST("", notificationHandler.CreateNotification)
		notifications.GET("/:id", notificationHandler.GetUserNotifications)
		notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
	}

	return r
}
