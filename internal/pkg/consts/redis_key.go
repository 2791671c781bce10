package consts

const (
	IdempotentKey         = "idempotent:token:"
	InteractionCountKey   = "interaction:count:"
	StatRebuildSummaryKey = "stat:rebuild:summary"
	StatOverviewKey       = "stat:overview:"
)
