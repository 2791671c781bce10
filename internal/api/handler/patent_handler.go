package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PatentHandler struct {
	patentSvc service.PatentService
	idemSvc   service.IdempotencyService
}

func NewPatentHandler(patentSvc service.PatentService, idemSvc service.IdempotencyService) *PatentHandler {
	return &PatentHandler{
		patentSvc: patentSvc,
		idemSvc:   idemSvc,
	}
}

// Create 登记专利
func (s *PatentHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.PatentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.idemSvc.Check(ctx, "patent:create", strconv.FormatUint(userID, 10), req.PatentNo); err != nil {
		response.Error(c, err)
		return
	}

	patentID, err := s.patentSvc.Create(ctx, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"patent_id": patentID})
}

// Delete 删除专利
func (s *PatentHandler) Delete(c *gin.Context) {
	patentID, err := strconv.ParseUint(c.Param("patent_id"), 10, 64)
	if err != nil || patentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.patentSvc.Delete(c.Request.Context(), userID, patentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Get 专利详情
func (s *PatentHandler) Get(c *gin.Context) {
	patentID, err := strconv.ParseUint(c.Param("patent_id"), 10, 64)
	if err != nil || patentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.patentSvc.Get(c.Request.Context(), patentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}
