package usecase

import "time"

const (
	// SummaryCacheKey is the cache slot holding the serialized financial
	// summary. Every ledger or expenditure mutation deletes it.
	SummaryCacheKey = "financial-summary"

	// SummaryCacheTTL caps how stale a cached summary can get even without
	// mutations.
	SummaryCacheTTL = 5 * time.Minute

	// NotifyTimeout bounds the background receipt notification dispatch.
	NotifyTimeout = 30 * time.Second
)
