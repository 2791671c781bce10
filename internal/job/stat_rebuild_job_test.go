package job

import (
	"ScholarHub/internal/model"
	"ScholarHub/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDimensions() *dimensionSet {
	return &dimensionSet{
		semesters:  map[uint64]struct{}{1: {}},
		fields:     map[uint64]struct{}{10: {}, 11: {}},
		categories: map[uint64]struct{}{2: {}},
	}
}

func testMemberships() map[uint64][]*model.Department {
	return map[uint64][]*model.Department{
		7: {{ID: 3, CollegeID: 1}},
		8: {{ID: 3, CollegeID: 1}, {ID: 4, CollegeID: 1}},
	}
}

func TestStatAccumulator_CountsPerResolvedKey(t *testing.T) {
	acc := newStatAccumulator(testDimensions(), testMemberships())
	ctx := context.Background()

	acc.add(ctx, "project", 100, 7, []uint64{10}, 1, 2, model.MetricLocalProject)
	acc.add(ctx, "project", 101, 7, []uint64{10}, 1, 2, model.MetricGithubProject)
	acc.add(ctx, "question", 200, 7, []uint64{10}, 1, 2, model.MetricQuestion)

	require.Equal(t, 3, acc.processed)
	require.Zero(t, acc.skipped)

	for _, key := range service.ResolveStatKeys(7, testMemberships()[7], []uint64{10}, 1, 2) {
		rec, ok := acc.rows[key]
		require.True(t, ok, "missing key %+v", key)
		require.Equal(t, 1, rec.LocalProjectCount)
		require.Equal(t, 1, rec.GithubProjectCount)
		require.Equal(t, 1, rec.QuestionCount)
		require.Zero(t, rec.PatentCount)
	}
}

func TestStatAccumulator_SkipsDanglingDimensions(t *testing.T) {
	acc := newStatAccumulator(testDimensions(), testMemberships())
	ctx := context.Background()

	tests := []struct {
		name       string
		fieldIDs   []uint64
		semesterID uint64
		categoryID uint64
	}{
		{name: "unknown semester", fieldIDs: []uint64{10}, semesterID: 99, categoryID: 2},
		{name: "unknown category", fieldIDs: []uint64{10}, semesterID: 1, categoryID: 99},
		{name: "unknown field", fieldIDs: []uint64{99}, semesterID: 1, categoryID: 2},
		{name: "no fields", fieldIDs: nil, semesterID: 1, categoryID: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := acc.skipped
			acc.add(ctx, "patent", 300, 7, tc.fieldIDs, tc.semesterID, tc.categoryID, model.MetricPatent)
			require.Equal(t, before+1, acc.skipped)
		})
	}

	require.Zero(t, acc.processed)
	require.Empty(t, acc.rows)
}

func TestStatAccumulator_MultiMembershipCollegeDedup(t *testing.T) {
	acc := newStatAccumulator(testDimensions(), testMemberships())
	ctx := context.Background()

	// 用户 8 的两个系所同属学院 1，学院键只累加一次
	acc.add(ctx, "team", 400, 8, []uint64{10}, 1, 2, model.MetricTeam)

	collegeKey := model.StatKey{Scope: model.ScopeCollege, TargetID: 1, SemesterID: 1, FieldID: 10, CategoryID: 2}
	require.Equal(t, 1, acc.rows[collegeKey].TeamCount)

	for _, deptID := range []uint64{3, 4} {
		deptKey := model.StatKey{Scope: model.ScopeDepartment, TargetID: deptID, SemesterID: 1, FieldID: 10, CategoryID: 2}
		require.Equal(t, 1, acc.rows[deptKey].TeamCount)
	}
}

func TestStatAccumulator_MatchesIncrementalExpansion(t *testing.T) {
	// 全量重建与增量调整共用同一套键展开，两条路径必须落到同一组键
	acc := newStatAccumulator(testDimensions(), testMemberships())
	ctx := context.Background()

	acc.add(ctx, "question", 500, 8, []uint64{10, 11}, 1, 2, model.MetricQuestion)

	expected := service.ResolveStatKeys(8, testMemberships()[8], []uint64{10, 11}, 1, 2)
	require.Len(t, acc.rows, len(expected))
	for _, key := range expected {
		rec, ok := acc.rows[key]
		require.True(t, ok, "missing key %+v", key)
		require.Equal(t, 1, rec.QuestionCount)
	}
}

func TestStatAccumulator_RecordsSnapshot(t *testing.T) {
	acc := newStatAccumulator(testDimensions(), testMemberships())
	ctx := context.Background()

	acc.add(ctx, "project", 100, 7, []uint64{10}, 1, 2, model.MetricLocalProject)
	acc.add(ctx, "project", 101, 8, []uint64{11}, 1, 2, model.MetricLocalProject)

	records := acc.records()
	require.Len(t, records, len(acc.rows))

	total := 0
	for _, rec := range records {
		total += rec.LocalProjectCount
	}
	keys7 := len(service.ResolveStatKeys(7, testMemberships()[7], []uint64{10}, 1, 2))
	keys8 := len(service.ResolveStatKeys(8, testMemberships()[8], []uint64{11}, 1, 2))
	require.Equal(t, keys7+keys8, total)
}
