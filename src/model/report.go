package model

import "time"

// ScanReport is the per-cycle JSON artifact summarizing a scan for external
// audit.
type ScanReport struct {
	ReportID          string            `json:"report_id"`
	Timestamp         time.Time         `json:"timestamp"`
	TotalSignals      int               `json:"total_signals"`
	ActionableSignals int               `json:"actionable_signals"`
	ConversionRate    float64           `json:"conversion_rate"`
	GeneratedTrades   int               `json:"generated_trades"`
	ExecutedTrades    int               `json:"executed_trades"`
	Trades            []ScanReportTrade `json:"trades"`
}

// ScanReportTrade is one generated trade record inside a scan report.
type ScanReportTrade struct {
	Symbol     string  `json:"symbol"`
	Action     string  `json:"action"`
	Quantity   int64   `json:"quantity"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}
