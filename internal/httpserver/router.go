package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"growthplan/internal/handler"
	"growthplan/pkg/mq"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Auth          *handler.AuthHandler
	Plan          *handler.PlanHandler
	Task          *handler.TaskHandler
	Profile       *handler.ProfileHandler
	Notifications *handler.NotificationHandler
	JWTSecret     string
	DB            *pgxpool.Pool
	Publisher     *mq.Publisher
	Logger        *zap.Logger
}

// NewRouter 组装所有路由和中间件
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(deps.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database"})
			return
		}
		if deps.Publisher != nil && !deps.Publisher.IsConnected() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "mq"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/register", deps.Auth.Register)
	r.POST("/login", deps.Auth.Login)

	api := r.Group("/")
	api.Use(AuthMiddleware(deps.JWTSecret))
	{
		api.GET("/plan/day/:day", deps.Plan.GetDay)
		api.POST("/plan/day/:day/generate", deps.Plan.GenerateDay)
		api.POST("/plan/week/:week/generate", deps.Plan.GenerateWeek)
		api.POST("/plan/import", deps.Plan.ImportPlan)

		api.GET("/tasks", deps.Task.ListTasks)
		api.POST("/tasks/:id/complete", deps.Task.CompleteTask)
		api.POST("/tasks/:id/skip", deps.Task.SkipTask)
		api.DELETE("/tasks/:id", deps.Task.DeleteTask)

		api.GET("/notifications", deps.Notifications.ListUnread)

		api.GET("/profile", deps.Profile.GetProfile)
		api.PUT("/profile", deps.Profile.PutProfile)
		api.POST("/profile/avoid/:platform", deps.Profile.AvoidPlatform)
		api.POST("/engagement", deps.Profile.PostEngagement)
		api.POST("/feedback", deps.Profile.PostFeedback)
	}

	return r
}
