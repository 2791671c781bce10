package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
	idemSvc    service.IdempotencyService
}

func NewProjectHandler(projectSvc service.ProjectService, idemSvc service.IdempotencyService) *ProjectHandler {
	return &ProjectHandler{
		projectSvc: projectSvc,
		idemSvc:    idemSvc,
	}
}

// Create 创建项目
func (s *ProjectHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.idemSvc.Check(ctx, "project:create", strconv.FormatUint(userID, 10), req.Title); err != nil {
		response.Error(c, err)
		return
	}

	projectID, err := s.projectSvc.Create(ctx, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"project_id": projectID})
}

// Update 更新项目
func (s *ProjectHandler) Update(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.ProjectUpdateReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.projectSvc.Update(c.Request.Context(), userID, projectID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除项目
func (s *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.projectSvc.Delete(c.Request.Context(), userID, projectID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Get 项目详情
func (s *ProjectHandler) Get(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.projectSvc.Get(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// CreateComment 发表项目评论
func (s *ProjectHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.ProjectCommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.projectSvc.CreateComment(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteComment 删除项目评论
func (s *ProjectHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.projectSvc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
