package executors

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"predictiontrader/src/model"
)

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	report := &model.ScanReport{
		ReportID:          "abc-123",
		Timestamp:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalSignals:      4,
		ActionableSignals: 2,
		ConversionRate:    0.5,
		GeneratedTrades:   1,
		Trades: []model.ScanReportTrade{
			{Symbol: "TLT", Action: model.SideBuy, Quantity: 24, Confidence: 0.48, Reasoning: "monetary_policy prediction"},
		},
	}

	path, err := WriteReport(dir, report)
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	if filepath.Base(path) != "scan_report_abc-123.json" {
		t.Fatalf("unexpected report filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report back: %v", err)
	}

	var got model.ScanReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if got.ReportID != report.ReportID || got.TotalSignals != 4 {
		t.Fatalf("report round trip mismatch: %+v", got)
	}
	if len(got.Trades) != 1 || got.Trades[0].Symbol != "TLT" {
		t.Fatalf("unexpected trades in report: %+v", got.Trades)
	}
}
