package dto

type StatQueryReq struct {
	Scope      int8   `form:"scope" binding:"required,oneof=1 2 3 4"`
	TargetID   uint64 `form:"target_id"`
	SemesterID uint64 `form:"semester_id" binding:"required"`
	FieldID    uint64 `form:"field_id" binding:"required"`
	CategoryID uint64 `form:"category_id" binding:"required"`
}

type StatRecordDTO struct {
	Scope              int8   `json:"scope"`
	TargetID           uint64 `json:"targetId"`
	SemesterID         uint64 `json:"semesterId"`
	FieldID            uint64 `json:"fieldId"`
	CategoryID         uint64 `json:"categoryId"`
	LocalProjectCount  int    `json:"localProjectCount"`
	GithubProjectCount int    `json:"githubProjectCount"`
	QuestionCount      int    `json:"questionCount"`
	PatentCount        int    `json:"patentCount"`
	TeamCount          int    `json:"teamCount"`
}

type StatOverviewDTO struct {
	Total       []*StatRecordDTO `json:"total"`
	Colleges    []*StatRecordDTO `json:"colleges"`
	Departments []*StatRecordDTO `json:"departments"`
}

type RebuildSummaryDTO struct {
	Processed  int    `json:"processed"`
	Skipped    int    `json:"skipped"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt"`
}
