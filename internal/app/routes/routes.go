package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/controllers"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/metrics"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/ratelimit"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/websocket"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Conversation *controllers.ConversationController
	Message      *controllers.MessageController
	Publication  *controllers.PublicationController
	User         *controllers.UserController
	Club         *controllers.ClubController
	Notification *controllers.NotificationController
	WebSocket    *websocket.Handler
}

// RateLimits are the per-user rules applied to write-heavy endpoints
type RateLimits struct {
	Limiter *ratelimit.Limiter
	Message ratelimit.Rule
	Report  ratelimit.Rule
}

// Options toggles the unauthenticated operational endpoints
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limits RateLimits,
	opts Options,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(metrics.Handler()))
	}

	// Browsers cannot set headers on the upgrade request, so JWTAuth also reads ?token=
	if ctrl.WebSocket != nil {
		router.GET("/ws", authMiddleware.JWTAuth(), authMiddleware.ActiveAccountRequired(), ctrl.WebSocket.HandleConnection)
	}

	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveAccountRequired())

	messageLimit := middleware.RateLimit(limits.Limiter, limits.Message)
	reportLimit := middleware.RateLimit(limits.Limiter, limits.Report)

	conversations := authenticated.Group("/conversations")
	{
		conversations.GET("", ctrl.Conversation.ListConversations)
		conversations.GET("/users/:userId", ctrl.Conversation.OpenDirectThread)
		conversations.GET("/clubs/:clubId", ctrl.Conversation.OpenClubThread)
	}

	messages := authenticated.Group("/messages")
	{
		messages.POST("", messageLimit, ctrl.Message.SendMessage)
		messages.POST("/read", ctrl.Message.MarkRead)
	}

	publications := authenticated.Group("/publications")
	{
		publications.POST("", ctrl.Publication.CreatePublication)
		publications.GET("/:id", ctrl.Publication.GetPublication)
		publications.POST("/:id/vote", ctrl.Publication.Vote)
		publications.POST("/:id/reactions", ctrl.Publication.AddReaction)
		publications.GET("/:id/reactions", ctrl.Publication.ListReactions)
	}
	authenticated.POST("/reactions/:id/replies", ctrl.Publication.ReplyToReaction)

	users := authenticated.Group("/users/:userId")
	{
		users.POST("/reports", reportLimit, ctrl.User.FileReport)
		users.GET("/moderation", ctrl.User.GetModerationStatus)
		users.POST("/follow", ctrl.User.ToggleFollow)
		users.GET("/followers", ctrl.User.ListFollowers)
		users.GET("/following", ctrl.User.ListFollowing)
	}

	clubs := authenticated.Group("/clubs")
	{
		clubs.POST("", ctrl.Club.CreateClub)
		clubs.GET("/:clubId", ctrl.Club.GetClub)
		clubs.POST("/:clubId/members", ctrl.Club.JoinClub)
		clubs.DELETE("/:clubId/members", ctrl.Club.LeaveClub)
		clubs.POST("/:clubId/admins", ctrl.Club.ManageAdmin)
		clubs.POST("/:clubId/messages", messageLimit, ctrl.Message.SendClubMessage)
	}

	pages := authenticated.Group("/pages/:pageId")
	{
		pages.POST("/subscribers", ctrl.Club.SubscribePage)
		pages.DELETE("/subscribers", ctrl.Club.UnsubscribePage)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", ctrl.Notification.ListNotifications)
		notifications.PATCH("/read-all", ctrl.Notification.MarkAllRead)
		notifications.PATCH("/:id/read", ctrl.Notification.MarkRead)
	}
}
