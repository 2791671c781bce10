package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/redis"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const overviewCacheExpiration = 5 * time.Minute

type StatHandler struct {
	statSvc service.StatService
}

func NewStatHandler(statSvc service.StatService) *StatHandler {
	return &StatHandler{statSvc: statSvc}
}

// Query 查询单个聚合键的计数，键不存在时返回全零
func (s *StatHandler) Query(c *gin.Context) {
	var req dto.StatQueryReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	rec, err := s.statSvc.GetByKey(c.Request.Context(), model.StatKey{
		Scope:      model.StatScope(req.Scope),
		TargetID:   req.TargetID,
		SemesterID: req.SemesterID,
		FieldID:    req.FieldID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	item := &dto.StatRecordDTO{}
	_ = copier.Copy(item, rec)
	item.Scope = int8(rec.Scope)
	response.Success(c, item)
}

// Overview 按学期拉取全站、学院、系所三层聚合，三路并发查询。
// 结果短暂缓存，报表页刷新不会反复打满三路扫描
func (s *StatHandler) Overview(c *gin.Context) {
	semesterID := parseUintQuery(c, "semester_id")

	ctx := c.Request.Context()
	cacheKey := consts.StatOverviewKey + strconv.FormatUint(semesterID, 10)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		overview := &dto.StatOverviewDTO{}
		if json.Unmarshal([]byte(cached), overview) == nil {
			response.Success(c, overview)
			return
		}
	}

	overview := &dto.StatOverviewDTO{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.statSvc.ListByScope(gCtx, model.ScopeTotal, semesterID)
		if err != nil {
			return err
		}
		overview.Total = toStatDTOs(records)
		return nil
	})
	g.Go(func() error {
		records, err := s.statSvc.ListByScope(gCtx, model.ScopeCollege, semesterID)
		if err != nil {
			return err
		}
		overview.Colleges = toStatDTOs(records)
		return nil
	})
	g.Go(func() error {
		records, err := s.statSvc.ListByScope(gCtx, model.ScopeDepartment, semesterID)
		if err != nil {
			return err
		}
		overview.Departments = toStatDTOs(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		response.Error(c, err)
		return
	}

	if payload, err := json.Marshal(overview); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, string(payload), overviewCacheExpiration)
	}
	response.Success(c, overview)
}

func parseUintQuery(c *gin.Context, name string) uint64 {
	value, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func toStatDTOs(records []*model.StatRecord) []*dto.StatRecordDTO {
	items := make([]*dto.StatRecordDTO, 0, len(records))
	for _, rec := range records {
		item := &dto.StatRecordDTO{}
		_ = copier.Copy(item, rec)
		item.Scope = int8(rec.Scope)
		items = append(items, item)
	}
	return items
}
