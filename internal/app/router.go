package app

import (
	"venus_handbook_backend/docs"
	"venus_handbook_backend/internal/middleware"
	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, repos)
	a.registerUserRoutes(router, c, repos)
	a.registerAdminRoutes(router, c, repos)
}

// registerPublicRoutes 图鉴目录对游客开放；附带 TryAuth，
// 登录用户的详情页可标记收藏状态。
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	api := router.Group("/api")
	api.Use(middleware.TryAuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		api.GET("/characters", c.character.List)
		api.GET("/characters/filters", c.character.Filters)
		api.GET("/characters/:id", c.character.Get)

		api.GET("/swimsuits", c.swimsuit.List)
		api.GET("/swimsuits/filters", c.swimsuit.Filters)
		api.GET("/swimsuits/:id", c.swimsuit.Get)

		api.GET("/gachas", c.gacha.List)
		api.GET("/gachas/filters", c.gacha.Filters)
		api.GET("/gachas/:id", c.gacha.Get)

		api.GET("/missions", c.mission.List)
		api.GET("/missions/filters", c.mission.Filters)
		api.GET("/missions/:id", c.mission.Get)

		api.GET("/guides", c.guide.List)
		api.GET("/guides/filters", c.guide.Filters)
		api.GET("/guides/:slug", c.guide.Get)

		api.GET("/quizzes", c.quiz.List)
		api.GET("/quizzes/filters", c.quiz.Filters)
	}
}

// registerUserRoutes 需要登录的接口：答题会话与收藏
func (a *App) registerUserRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		api.GET("/me", c.auth.Me)

		api.POST("/quizzes/:id/start", c.quiz.Start)
		api.GET("/quizzes/results", c.quiz.History)

		sessions := api.Group("/quiz-sessions/:token")
		{
			sessions.GET("", c.quiz.State)
			sessions.POST("/select", c.quiz.Select)
			sessions.POST("/text", c.quiz.SetText)
			sessions.POST("/submit", c.quiz.Submit)
			sessions.POST("/skip", c.quiz.Skip)
			sessions.POST("/bookmark", c.quiz.Bookmark)
			sessions.POST("/finish", c.quiz.Finish)
			sessions.GET("/result", c.quiz.Result)
		}

		api.GET("/favorites", c.favorite.List)
		api.POST("/favorites/toggle", c.favorite.Toggle)
	}
}

// registerAdminRoutes 编辑与管理员的内容维护接口
func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(model.Editor), middleware.ActivityMiddleware(repos.user))
	{
		admin.POST("/characters", c.character.Create)
		admin.PUT("/characters/:id", c.character.Update)
		admin.DELETE("/characters/:id", c.character.Delete)
		admin.POST("/characters/import", c.character.Import)

		admin.POST("/swimsuits", c.swimsuit.Create)
		admin.PUT("/swimsuits/:id", c.swimsuit.Update)
		admin.DELETE("/swimsuits/:id", c.swimsuit.Delete)
		admin.POST("/swimsuits/import", c.swimsuit.Import)

		admin.POST("/gachas", c.gacha.Create)
		admin.PUT("/gachas/:id", c.gacha.Update)
		admin.DELETE("/gachas/:id", c.gacha.Delete)

		admin.POST("/missions", c.mission.Create)
		admin.PUT("/missions/:id", c.mission.Update)
		admin.DELETE("/missions/:id", c.mission.Delete)

		admin.POST("/guides", c.guide.Create)
		admin.PUT("/guides/:id", c.guide.Update)
		admin.DELETE("/guides/:id", c.guide.Delete)
		admin.POST("/guides/:id/asset", c.guide.UploadAsset)
		admin.POST("/guides/:id/video", c.guide.UploadVideo)

		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.GET("/quizzes/:id/questions", c.quiz.ListQuestions)
		admin.POST("/quizzes/:id/questions", c.quiz.CreateQuestion)
		admin.PUT("/quizzes/:id/questions/:qid", c.quiz.UpdateQuestion)
		admin.DELETE("/quizzes/:id/questions/:qid", c.quiz.DeleteQuestion)
	}
}
