package api

import "ScholarHub/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	ProjectHandler     *handler.ProjectHandler
	QuestionHandler    *handler.QuestionHandler
	PatentHandler      *handler.PatentHandler
	TeamHandler        *handler.TeamHandler
	InteractionHandler *handler.InteractionHandler
	StatHandler        *handler.StatHandler
	AdminHandler       *handler.AdminHandler
}
