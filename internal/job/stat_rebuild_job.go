package job

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/logger"
	"ScholarHub/internal/pkg/redis"
	"ScholarHub/internal/repository"
	"ScholarHub/internal/service"
	"context"
	log "log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	rebuildScanBatch   = 500
	rebuildInsertBatch = 500
	rebuildSummaryTTL  = 30 * 24 * time.Hour
)

// StatRebuildJob 从业务表全量重算统计聚合，覆盖线上可能漂移的增量计数。
// 扫描期间的并发写入不在本轮结果中，留给下一轮收敛。
type StatRebuildJob struct {
	projectRepo  repository.ProjectRepo
	questionRepo repository.QuestionRepo
	patentRepo   repository.PatentRepo
	teamRepo     repository.TeamRepo
	orgRepo      repository.OrgRepo
	dictRepo     repository.DictRepo
	statRepo     repository.StatRepo
}

func NewStatRebuildJob(
	projectRepo repository.ProjectRepo,
	questionRepo repository.QuestionRepo,
	patentRepo repository.PatentRepo,
	teamRepo repository.TeamRepo,
	orgRepo repository.OrgRepo,
	dictRepo repository.DictRepo,
	statRepo repository.StatRepo,
) *StatRebuildJob {
	return &StatRebuildJob{
		projectRepo:  projectRepo,
		questionRepo: questionRepo,
		patentRepo:   patentRepo,
		teamRepo:     teamRepo,
		orgRepo:      orgRepo,
		dictRepo:     dictRepo,
		statRepo:     statRepo,
	}
}

func (s *StatRebuildJob) Run() {
	traceID := "job-stat-rebuild-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if _, err := s.Rebuild(ctx); err != nil {
		log.ErrorContext(ctx, "rebuild stat records error", "err", err)
	}
}

// Rebuild 清空聚合表后按业务表逐实体重算。维度残缺的实体计入 skipped
// 并留日志，不中断整轮任务
func (s *StatRebuildJob) Rebuild(ctx context.Context) (*dto.RebuildSummaryDTO, error) {
	startedAt := time.Now()
	log.InfoContext(ctx, "rebuild stat records start")

	dims, err := s.loadDimensions(ctx)
	if err != nil {
		return nil, err
	}

	memberships, err := s.orgRepo.GetAllUserDepartments(ctx)
	if err != nil {
		return nil, err
	}

	acc := newStatAccumulator(dims, memberships)

	if err = s.scanProjects(ctx, acc); err != nil {
		return nil, err
	}
	if err = s.scanQuestions(ctx, acc); err != nil {
		return nil, err
	}
	if err = s.scanPatents(ctx, acc); err != nil {
		return nil, err
	}
	if err = s.scanTeams(ctx, acc); err != nil {
		return nil, err
	}

	if err = s.statRepo.Truncate(ctx); err != nil {
		return nil, err
	}
	if err = s.statRepo.CreateInBatches(ctx, acc.records(), rebuildInsertBatch); err != nil {
		return nil, err
	}

	summary := &dto.RebuildSummaryDTO{
		Processed:  acc.processed,
		Skipped:    acc.skipped,
		StartedAt:  startedAt.Format("2006-01-02 15:04:05"),
		FinishedAt: time.Now().Format("2006-01-02 15:04:05"),
	}
	s.storeSummary(ctx, summary)

	log.InfoContext(ctx, "rebuild stat records success",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"rows", len(acc.records()),
		"cost", time.Since(startedAt).String())
	return summary, nil
}

func (s *StatRebuildJob) scanProjects(ctx context.Context, acc *statAccumulator) error {
	var lastID uint64
	for {
		projects, err := s.projectRepo.ListActive(ctx, lastID, rebuildScanBatch)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return nil
		}
		for _, p := range projects {
			metric := model.MetricLocalProject
			if p.Origin == model.ProjectOriginGithub {
				metric = model.MetricGithubProject
			}
			fieldIDs := make([]uint64, 0, len(p.Fields))
			for _, f := range p.Fields {
				fieldIDs = append(fieldIDs, f.ID)
			}
			acc.add(ctx, "project", p.ID, p.UserID, fieldIDs, p.SemesterID, p.CategoryID, metric)
			lastID = p.ID
		}
	}
}

func (s *StatRebuildJob) scanQuestions(ctx context.Context, acc *statAccumulator) error {
	var lastID uint64
	for {
		questions, err := s.questionRepo.ListActive(ctx, lastID, rebuildScanBatch)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for _, q := range questions {
			fieldIDs := make([]uint64, 0, len(q.Fields))
			for _, f := range q.Fields {
				fieldIDs = append(fieldIDs, f.ID)
			}
			acc.add(ctx, "question", q.ID, q.UserID, fieldIDs, q.SemesterID, q.CategoryID, model.MetricQuestion)
			lastID = q.ID
		}
	}
}

func (s *StatRebuildJob) scanPatents(ctx context.Context, acc *statAccumulator) error {
	var lastID uint64
	for {
		patents, err := s.patentRepo.ListActive(ctx, lastID, rebuildScanBatch)
		if err != nil {
			return err
		}
		if len(patents) == 0 {
			return nil
		}
		for _, p := range patents {
			acc.add(ctx, "patent", p.ID, p.UserID, []uint64{p.FieldID}, p.SemesterID, p.CategoryID, model.MetricPatent)
			lastID = p.ID
		}
	}
}

// scanTeams 团队指标按成员资格计数，每条成员关系贡献一笔，与入队/退队
// 的增量路径对齐
func (s *StatRebuildJob) scanTeams(ctx context.Context, acc *statAccumulator) error {
	var lastID uint64
	for {
		teams, err := s.teamRepo.ListActive(ctx, lastID, rebuildScanBatch)
		if err != nil {
			return err
		}
		if len(teams) == 0 {
			return nil
		}
		for _, t := range teams {
			memberIDs, err := s.teamRepo.ListMemberIDs(ctx, t.ID)
			if err != nil {
				return err
			}
			for _, memberID := range memberIDs {
				acc.add(ctx, "team", t.ID, memberID, []uint64{t.FieldID}, t.SemesterID, t.CategoryID, model.MetricTeam)
			}
			lastID = t.ID
		}
	}
}

func (s *StatRebuildJob) loadDimensions(ctx context.Context) (*dimensionSet, error) {
	semesters, err := s.dictRepo.ListSemesters(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.dictRepo.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.dictRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	dims := &dimensionSet{
		semesters:  make(map[uint64]struct{}, len(semesters)),
		fields:     make(map[uint64]struct{}, len(fields)),
		categories: make(map[uint64]struct{}, len(categories)),
	}
	for _, s := range semesters {
		dims.semesters[s.ID] = struct{}{}
	}
	for _, f := range fields {
		dims.fields[f.ID] = struct{}{}
	}
	for _, c := range categories {
		dims.categories[c.ID] = struct{}{}
	}
	return dims, nil
}

func (s *StatRebuildJob) storeSummary(ctx context.Context, summary *dto.RebuildSummaryDTO) {
	payload, err := json.Marshal(summary)
	if err != nil {
		log.ErrorContext(ctx, "marshal rebuild summary error", "err", err)
		return
	}
	if err = redis.SetWithExpiration(ctx, consts.StatRebuildSummaryKey, string(payload), rebuildSummaryTTL); err != nil {
		log.ErrorContext(ctx, "store rebuild summary error", "err", err)
	}
}

type dimensionSet struct {
	semesters  map[uint64]struct{}
	fields     map[uint64]struct{}
	categories map[uint64]struct{}
}

func (d *dimensionSet) valid(fieldIDs []uint64, semesterID, categoryID uint64) bool {
	if len(fieldIDs) == 0 {
		return false
	}
	if _, ok := d.semesters[semesterID]; !ok {
		return false
	}
	if _, ok := d.categories[categoryID]; !ok {
		return false
	}
	for _, id := range fieldIDs {
		if _, ok := d.fields[id]; !ok {
			return false
		}
	}
	return true
}

// statAccumulator 在内存中按聚合键累加，键展开与增量路径共用同一套逻辑
type statAccumulator struct {
	dims        *dimensionSet
	memberships map[uint64][]*model.Department
	rows        map[model.StatKey]*model.StatRecord
	processed   int
	skipped     int
}

func newStatAccumulator(dims *dimensionSet, memberships map[uint64][]*model.Department) *statAccumulator {
	return &statAccumulator{
		dims:        dims,
		memberships: memberships,
		rows:        make(map[model.StatKey]*model.StatRecord),
	}
}

func (a *statAccumulator) add(ctx context.Context, entity string, entityID, actorID uint64, fieldIDs []uint64, semesterID, categoryID uint64, metric model.StatMetric) {
	if !a.dims.valid(fieldIDs, semesterID, categoryID) {
		a.skipped++
		log.WarnContext(ctx, "skip entity with dangling dimensions",
			"entity", entity, "id", entityID,
			"semester_id", semesterID, "category_id", categoryID, "field_ids", fieldIDs)
		return
	}

	for _, key := range service.ResolveStatKeys(actorID, a.memberships[actorID], fieldIDs, semesterID, categoryID) {
		rec, ok := a.rows[key]
		if !ok {
			rec = &model.StatRecord{
				Scope:      key.Scope,
				TargetID:   key.TargetID,
				SemesterID: key.SemesterID,
				FieldID:    key.FieldID,
				CategoryID: key.CategoryID,
			}
			a.rows[key] = rec
		}
		rec.AddMetric(metric, 1)
	}
	a.processed++
}

func (a *statAccumulator) records() []*model.StatRecord {
	records := make([]*model.StatRecord, 0, len(a.rows))
	for _, rec := range a.rows {
		records = append(records, rec)
	}
	return records
}
