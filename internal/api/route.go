package api

import (
	"ScholarHub/internal/api/middleware"
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		projectGroup := apiGroup.Group("/projects")
		{
			projectGroup.GET("/:project_id", group.ProjectHandler.Get)

			authGroup := projectGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ProjectHandler.Create)
				authGroup.PUT("/:project_id", group.ProjectHandler.Update)
				authGroup.DELETE("/:project_id", group.ProjectHandler.Delete)
				authGroup.POST("/comments", group.ProjectHandler.CreateComment)
				authGroup.DELETE("/comments/:comment_id", group.ProjectHandler.DeleteComment)
			}
		}

		questionGroup := apiGroup.Group("/questions")
		{
			questionGroup.GET("/:question_id", group.QuestionHandler.Get)

			authGroup := questionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.QuestionHandler.Create)
				authGroup.PUT("/:question_id", group.QuestionHandler.Update)
				authGroup.DELETE("/:question_id", group.QuestionHandler.Delete)
				authGroup.POST("/comments", group.QuestionHandler.CreateComment)
				authGroup.DELETE("/comments/:comment_id", group.QuestionHandler.DeleteComment)
			}
		}

		patentGroup := apiGroup.Group("/patents")
		{
			patentGroup.GET("/:patent_id", group.PatentHandler.Get)

			authGroup := patentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PatentHandler.Create)
				authGroup.DELETE("/:patent_id", group.PatentHandler.Delete)
			}
		}

		teamGroup := apiGroup.Group("/teams")
		{
			teamGroup.GET("/:team_id", group.TeamHandler.Get)

			authGroup := teamGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.TeamHandler.Create)
				authGroup.DELETE("/:team_id", group.TeamHandler.Delete)
				authGroup.POST("/:team_id/members", group.TeamHandler.Join)
				authGroup.DELETE("/:team_id/members", group.TeamHandler.Leave)
			}
		}

		interactionGroup := apiGroup.Group("/interaction")
		{
			stateGroup := interactionGroup.Group("")
			stateGroup.Use(middleware.AuthOptionalMiddleware())
			{
				stateGroup.GET("/:kind/:target_id/state", group.InteractionHandler.GetState)
			}

			authGroup := interactionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/:kind/:target_id", group.InteractionHandler.Interact)
			}
		}

		statGroup := apiGroup.Group("/stats")
		{
			statGroup.GET("/query", group.StatHandler.Query)
			statGroup.GET("/overview", group.StatHandler.Overview)
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.POST("/stats/rebuild", group.AdminHandler.RebuildStats)
			adminGroup.GET("/stats/rebuild/summary", group.AdminHandler.GetRebuildSummary)
		}
	}

	return r
}
