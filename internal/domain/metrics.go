package domain

// LedgerMetrics is the aggregated view served by GET /v1/metrics/ledger.
// Values are derived from the Prometheus counters, so they are cumulative
// since process start.
type LedgerMetrics struct {
	AccountsCreated     int64   `json:"accounts_created"`
	TotalTransfers      int64   `json:"total_transfers"`
	SuccessfulTransfers int64   `json:"successful_transfers"`
	FailedTransfers     int64   `json:"failed_transfers"`
	RejectedTransfers   int64   `json:"rejected_transfers"`
	FailureRate         float64 `json:"failure_rate"`
	NotifierErrors      int64   `json:"notifier_errors"`
	CacheHitRate        float64 `json:"cache_hit_rate"`
	Period              string  `json:"period"`
}
