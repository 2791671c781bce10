package wire

import (
	"ScholarHub/internal/api"
	"ScholarHub/internal/api/handler"
	"ScholarHub/internal/job"
	"ScholarHub/internal/pkg/cron"
	"ScholarHub/internal/repository"
	"ScholarHub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	orgRepo := repository.NewOrgRepo(db)
	dictRepo := repository.NewDictRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	patentRepo := repository.NewPatentRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	statRepo := repository.NewStatRepo(db)

	idemSvc := service.NewIdempotencyService()
	statSvc := service.NewStatService(statRepo, orgRepo)
	interactionSvc := service.NewInteractionService(interactionRepo)
	userSvc := service.NewUserService(userRepo)
	projectSvc := service.NewProjectService(projectRepo, interactionRepo, dictRepo, statSvc)
	questionSvc := service.NewQuestionService(questionRepo, interactionRepo, dictRepo, statSvc)
	patentSvc := service.NewPatentService(patentRepo, dictRepo, statSvc)
	teamSvc := service.NewTeamService(teamRepo, dictRepo, statSvc)

	rebuildJob := job.NewStatRebuildJob(projectRepo, questionRepo, patentRepo, teamRepo, orgRepo, dictRepo, statRepo)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userSvc),
		ProjectHandler:     handler.NewProjectHandler(projectSvc, idemSvc),
		QuestionHandler:    handler.NewQuestionHandler(questionSvc, idemSvc),
		PatentHandler:      handler.NewPatentHandler(patentSvc, idemSvc),
		TeamHandler:        handler.NewTeamHandler(teamSvc, idemSvc),
		InteractionHandler: handler.NewInteractionHandler(interactionSvc, idemSvc),
		StatHandler:        handler.NewStatHandler(statSvc),
		AdminHandler:       handler.NewAdminHandler(rebuildJob),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cron.NewCronManager(rebuildJob),
	}, nil
}
