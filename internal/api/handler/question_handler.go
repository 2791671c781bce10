package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionSvc service.QuestionService
	idemSvc     service.IdempotencyService
}

func NewQuestionHandler(questionSvc service.QuestionService, idemSvc service.IdempotencyService) *QuestionHandler {
	return &QuestionHandler{
		questionSvc: questionSvc,
		idemSvc:     idemSvc,
	}
}

// Create 发布问题
func (s *QuestionHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.QuestionCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.idemSvc.Check(ctx, "question:create", strconv.FormatUint(userID, 10), req.Title); err != nil {
		response.Error(c, err)
		return
	}

	questionID, err := s.questionSvc.Create(ctx, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"question_id": questionID})
}

// Update 更新问题
func (s *QuestionHandler) Update(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("question_id"), 10, 64)
	if err != nil || questionID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.QuestionUpdateReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.questionSvc.Update(c.Request.Context(), userID, questionID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除问题
func (s *QuestionHandler) Delete(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("question_id"), 10, 64)
	if err != nil || questionID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.questionSvc.Delete(c.Request.Context(), userID, questionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Get 问题详情
func (s *QuestionHandler) Get(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("question_id"), 10, 64)
	if err != nil || questionID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.questionSvc.Get(c.Request.Context(), questionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// CreateComment 回答/追评
func (s *QuestionHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.QuestionCommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.questionSvc.CreateComment(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteComment 删除回答
func (s *QuestionHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.questionSvc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
