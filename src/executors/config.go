package executors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LoopPeriod      time.Duration `envconfig:"LOOP_PERIOD" default:"5m"`
	ErrorCooldown   time.Duration `envconfig:"ERROR_COOLDOWN" default:"30s"`
	ReportDir       string        `envconfig:"REPORT_DIR" default:"reports"`
	AutoApprove     bool          `envconfig:"AUTO_APPROVE" default:"false"`
	AutoApproveMin  float64       `envconfig:"AUTO_APPROVE_MIN_CONFIDENCE" default:"0.5"`
	DailyTradeLimit int           `envconfig:"DAILY_TRADE_LIMIT" default:"10"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
