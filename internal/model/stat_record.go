package model

import (
	"time"
)

// StatScope 统计聚合的组织粒度
type StatScope int8

const (
	ScopeTotal StatScope = iota + 1
	ScopeCollege
	ScopeDepartment
	ScopeUser
)

// StatMetric 一次统计事件累加的计数列
type StatMetric int8

const (
	MetricLocalProject StatMetric = iota + 1
	MetricGithubProject
	MetricQuestion
	MetricPatent
	MetricTeam
)

// StatKey 唯一定位一行聚合记录。TargetID 在 ScopeTotal 下恒为 0
type StatKey struct {
	Scope      StatScope
	TargetID   uint64
	SemesterID uint64
	FieldID    uint64
	CategoryID uint64
}

// StatRecord 多维统计聚合行，按 (scope, target, semester, field, category) 唯一。
// 首次累加时懒创建，平时只增减，全量重建时整表清空后重写。
type StatRecord struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Scope      StatScope `gorm:"not null;uniqueIndex:idx_stat_key" json:"scope"`
	TargetID   uint64    `gorm:"not null;default:0;uniqueIndex:idx_stat_key" json:"targetId"`
	SemesterID uint64    `gorm:"not null;uniqueIndex:idx_stat_key" json:"semesterId"`
	FieldID    uint64    `gorm:"not null;uniqueIndex:idx_stat_key" json:"fieldId"`
	CategoryID uint64    `gorm:"not null;uniqueIndex:idx_stat_key" json:"categoryId"`

	LocalProjectCount  int `gorm:"not null;default:0" json:"localProjectCount"`
	GithubProjectCount int `gorm:"not null;default:0" json:"githubProjectCount"`
	QuestionCount      int `gorm:"not null;default:0" json:"questionCount"`
	PatentCount        int `gorm:"not null;default:0" json:"patentCount"`
	TeamCount          int `gorm:"not null;default:0" json:"teamCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StatRecord) TableName() string {
	return "stat_records"
}

// Key 提取本行的聚合键
func (r *StatRecord) Key() StatKey {
	return StatKey{
		Scope:      r.Scope,
		TargetID:   r.TargetID,
		SemesterID: r.SemesterID,
		FieldID:    r.FieldID,
		CategoryID: r.CategoryID,
	}
}

// CounterColumn 返回计数列的数据库列名
func (m StatMetric) CounterColumn() string {
	switch m {
	case MetricLocalProject:
		return "local_project_count"
	case MetricGithubProject:
		return "github_project_count"
	case MetricQuestion:
		return "question_count"
	case MetricPatent:
		return "patent_count"
	case MetricTeam:
		return "team_count"
	}
	return ""
}

// AddMetric 在内存中对指定计数列累加并截断到非负，重建任务使用
func (r *StatRecord) AddMetric(m StatMetric, delta int) {
	apply := func(cur int) int {
		if cur+delta < 0 {
			return 0
		}
		return cur + delta
	}
	switch m {
	case MetricLocalProject:
		r.LocalProjectCount = apply(r.LocalProjectCount)
	case MetricGithubProject:
		r.GithubProjectCount = apply(r.GithubProjectCount)
	case MetricQuestion:
		r.QuestionCount = apply(r.QuestionCount)
	case MetricPatent:
		r.PatentCount = apply(r.PatentCount)
	case MetricTeam:
		r.TeamCount = apply(r.TeamCount)
	}
}
