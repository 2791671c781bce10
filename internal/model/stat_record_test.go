package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatMetricCounterColumn(t *testing.T) {
	tests := []struct {
		metric StatMetric
		want   string
	}{
		{metric: MetricLocalProject, want: "local_project_count"},
		{metric: MetricGithubProject, want: "github_project_count"},
		{metric: MetricQuestion, want: "question_count"},
		{metric: MetricPatent, want: "patent_count"},
		{metric: MetricTeam, want: "team_count"},
		{metric: StatMetric(0), want: ""},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.metric.CounterColumn())
	}
}

func TestStatRecordAddMetric(t *testing.T) {
	rec := &StatRecord{}

	rec.AddMetric(MetricQuestion, 2)
	require.Equal(t, 2, rec.QuestionCount)

	rec.AddMetric(MetricQuestion, -1)
	require.Equal(t, 1, rec.QuestionCount)

	// 回减不穿透为负
	rec.AddMetric(MetricQuestion, -5)
	require.Zero(t, rec.QuestionCount)

	rec.AddMetric(MetricTeam, -1)
	require.Zero(t, rec.TeamCount)
}

func TestInteractionKindString(t *testing.T) {
	require.Equal(t, "project_like", KindProjectLike.String())
	require.Equal(t, "register_recommend", KindRegisterRecommend.String())
	require.Equal(t, "unknown", InteractionKind(99).String())
}
