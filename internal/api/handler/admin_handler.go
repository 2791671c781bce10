package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/job"
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/redis"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

type AdminHandler struct {
	rebuildJob *job.StatRebuildJob
}

func NewAdminHandler(rebuildJob *job.StatRebuildJob) *AdminHandler {
	return &AdminHandler{rebuildJob: rebuildJob}
}

// RebuildStats 手动触发统计全量重建，同步等待并返回本轮摘要
func (s *AdminHandler) RebuildStats(c *gin.Context) {
	summary, err := s.rebuildJob.Rebuild(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// GetRebuildSummary 查询最近一轮重建的摘要
func (s *AdminHandler) GetRebuildSummary(c *gin.Context) {
	value, err := redis.GetValue(c.Request.Context(), consts.StatRebuildSummaryKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	if value == "" {
		response.Success(c, nil)
		return
	}

	var summary dto.RebuildSummaryDTO
	if err = json.Unmarshal([]byte(value), &summary); err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	response.Success(c, &summary)
}
