package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/controllers"
	"github.com/collabsphere/collabsphere-backend/middlewares"
	"github.com/collabsphere/collabsphere-backend/models"
	"github.com/collabsphere/collabsphere-backend/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	rateLimiter := middlewares.NewRateLimiter(100, 60)
	r.Use(rateLimiter.RateLimit())

	notifier := services.NewNotificationService(db)

	userCtrl := controllers.NewUserController(db)
	projectCtrl := controllers.NewProjectController(db)
	collabCtrl := controllers.NewCollaborationController(db, notifier)
	endorseCtrl := controllers.NewEndorsementController(db, notifier)
	notifCtrl := controllers.NewNotificationController(db, notifier)
	oppCtrl := controllers.NewOpportunityController(db, notifier)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
		auth.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
		auth.POST("/logout", middlewares.AuthMiddleware(), userCtrl.Logout)
	}

	users := api.Group("/users", middlewares.AuthMiddleware())
	{
		users.GET("/me", userCtrl.GetProfile)
		users.GET("", userCtrl.GetAllUsers)
	}

	projects := api.Group("/projects", middlewares.AuthMiddleware())
	{
		projects.POST("", middlewares.RequireRoles(models.RoleStudent), projectCtrl.CreateProject)
		projects.GET("", projectCtrl.GetAllProjects)
		projects.GET("/:project_id", projectCtrl.GetProjectByID)
		projects.GET("/owner/:owner_id", projectCtrl.GetProjectsByOwner)
		projects.PUT("/:project_id/status", middlewares.RequireRoles(models.RoleAdmin), projectCtrl.UpdateProjectStatus)
	}

	collaborations := api.Group("/collaborations", middlewares.AuthMiddleware())
	{
		collaborations.POST("/apply", middlewares.RequireRoles(models.RoleStudent), collabCtrl.Apply)
		collaborations.PUT("/:request_id/decide", collabCtrl.Decide)
		collaborations.GET("/project/:project_id", collabCtrl.GetRequestsForProject)
		collaborations.GET("/student/:student_id", collabCtrl.GetRequestsByStudent)
	}

	endorsements := api.Group("/endorsements", middlewares.AuthMiddleware())
	{
		endorsements.POST("", middlewares.RequireRoles(models.RoleFaculty), endorseCtrl.Endorse)
		endorsements.PUT("/:endorsement_id/revoke", endorseCtrl.Revoke)
		endorsements.GET("/project/:project_id", endorseCtrl.GetEndorsementsForProject)
	}

	notifications := api.Group("/notifications", middlewares.AuthMiddleware())
	{
		notifications.GET("/user/:user_id", notifCtrl.GetNotificationsForUser)
		notifications.PUT("/:notification_id/read", notifCtrl.MarkRead)
	}

	opportunities := api.Group("/opportunities", middlewares.AuthMiddleware())
	{
		opportunities.POST("", middlewares.RequireRoles(models.RoleFaculty), oppCtrl.CreateOpportunity)
		opportunities.GET("/active", oppCtrl.GetActiveOpportunities)
		opportunities.GET("/:opportunity_id", oppCtrl.GetOpportunityByID)
		opportunities.PUT("/:opportunity_id/publish", oppCtrl.PublishOpportunity)
		opportunities.PUT("/:opportunity_id/close", oppCtrl.CloseOpportunity)
		opportunities.DELETE("/:opportunity_id", oppCtrl.DeleteOpportunity)
		opportunities.GET("/:opportunity_id/applications", oppCtrl.GetApplicationsForOpportunity)
	}

	applications := api.Group("/applications", middlewares.AuthMiddleware())
	{
		applications.POST("", middlewares.RequireRoles(models.RoleStudent), oppCtrl.ApplyToOpportunity)
		applications.PUT("/:application_id/decide", oppCtrl.DecideApplication)
		applications.GET("/student", oppCtrl.GetApplicationsForStudent)
	}

	return r
}
