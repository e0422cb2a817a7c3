package app

import (
	"gridiron_backend/internal/config"
	"gridiron_backend/internal/middleware"
	"gridiron_backend/internal/model"
	"gridiron_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	iq := router.Group("/api/football-iq")
	iq.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerAthleteRoutes(iq, c)
		a.registerCoachRoutes(iq, c)
	}
}

func (a *App) registerAthleteRoutes(group *gin.RouterGroup, c *controllers) {
	// 测验浏览
	group.GET("/quizzes", c.quiz.ListQuizzes)
	group.GET("/quizzes/:id", c.quiz.GetQuiz)
	group.GET("/quizzes/:id/questions", c.quiz.ListQuestions)

	// 作答
	athlete := group.Group("")
	athlete.Use(middleware.RoleMiddleware(model.Athlete))
	{
		athlete.POST("/quizzes/:id/attempts", c.footballIQ.StartAttempt)
		athlete.POST("/attempts/:id/complete", c.footballIQ.CompleteAttempt)
	}

	// 归属校验在控制器内完成
	group.GET("/attempts", c.footballIQ.ListAttempts)
	group.GET("/attempts/:id", c.footballIQ.GetAttempt)
	group.GET("/progress", c.footballIQ.GetProgress)
	group.GET("/progress/:id", c.footballIQ.GetProgressByID)
	group.GET("/leaderboard/:position", c.footballIQ.GetLeaderboard)
}

func (a *App) registerCoachRoutes(group *gin.RouterGroup, c *controllers) {
	coach := group.Group("")
	coach.Use(middleware.RoleMiddleware(model.Coach))
	{
		coach.POST("/quizzes", c.quiz.CreateQuiz)
		coach.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		coach.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		coach.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		coach.PUT("/quizzes/:id/questions/:questionId", c.quiz.UpdateQuestion)
		coach.DELETE("/quizzes/:id/questions/:questionId", c.quiz.DeleteQuestion)
	}
}
