package executors

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/model"
)

// WriteReport persists a scan report as a JSON artifact under dir. Returns the
// written path.
func WriteReport(dir string, report *model.ScanReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("scan_report_%s.json", report.ReportID))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"path":               path,
		"total_signals":      report.TotalSignals,
		"actionable_signals": report.ActionableSignals,
		"generated_trades":   report.GeneratedTrades,
		"executed_trades":    report.ExecutedTrades,
	}).Info("Scan report written")

	return path, nil
}
