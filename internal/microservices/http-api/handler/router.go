package handler

import (
	"log/slog"
	"net/http"
	"time"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/middleware"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Services are the domain services the router exposes.
type Services struct {
	Auth          service.AuthService
	Projects      service.ProjectService
	Feedback      service.FeedbackService
	Votes         service.VoteService
	Comments      service.CommentService
	Waitlist      service.WaitlistService
	Notifications service.NotificationService
}

// RouterOptions tunes the ambient middleware stack.
type RouterOptions struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	Limiter        *middleware.RateLimiter // nil disables rate limiting
	Database       Pinger
	Cache          Pinger       // optional
	Metrics        http.Handler // nil hides /metrics
	// TrustedProxies may set X-Forwarded-For; empty means the client IP is always the peer address.
	TrustedProxies []string
}

// NewRouter wires every endpoint onto a gin engine.
func NewRouter(svc Services, opts RouterOptions, logger *slog.Logger) *gin.Engine {
	if err := dto.RegisterValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", "error", err)
		r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Fail("Route not found"))
	})

	throttle := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		throttle = opts.Limiter.Middleware()
	}
	requireAuth := middleware.AuthMiddleware(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)

	health := NewHealthHandler(opts.Database, opts.Cache, logger)
	r.GET("/health", health.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	api := r.Group("/api")

	authHandler := NewAuthHandler(svc.Auth, logger)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", throttle, authHandler.Register)
		authGroup.POST("/login", throttle, authHandler.Login)
		authGroup.GET("/me", requireAuth, authHandler.Me)
	}

	NewProjectHandler(svc.Projects, logger).RegisterRoutes(api.Group("/projects", requireAuth))

	feedbackHandler := NewFeedbackHandler(svc.Feedback, logger)
	voteHandler := NewVoteHandler(svc.Votes, logger)
	feedback := api.Group("/feedback")
	{
		feedback.GET("", feedbackHandler.List)
		feedback.POST("", requireAuth, feedbackHandler.Create)
		feedback.PATCH("/:id/status", requireAuth, feedbackHandler.UpdateStatus)
		feedback.POST("/:id/vote", requireAuth, voteHandler.Vote)
		feedback.GET("/:id/vote", requireAuth, voteHandler.GetVote)
	}

	commentHandler := NewCommentHandler(svc.Comments, logger)
	comments := api.Group("/comments")
	{
		comments.GET("", commentHandler.List)
		comments.POST("", throttle, optionalAuth, commentHandler.Create)
		comments.PATCH("/:id", requireAuth, commentHandler.Update)
		comments.DELETE("/:id", requireAuth, commentHandler.Delete)
	}

	waitlistHandler := NewWaitlistHandler(svc.Waitlist, logger)
	api.POST("/waitlist", throttle, waitlistHandler.Join)
	api.GET("/waitlist", waitlistHandler.Stats)

	NewNotificationHandler(svc.Notifications, logger).RegisterRoutes(api.Group("/notifications", requireAuth))

	api.GET("/widget/feedback", middleware.APIKeyAuth(svc.Projects), feedbackHandler.ListForWidget)

	return r
}
