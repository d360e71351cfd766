package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server struct {
		Port         string        `default:"8080" envconfig:"PORT"`
		ReadTimeout  time.Duration `default:"30s" envconfig:"READ_TIMEOUT"`
		WriteTimeout time.Duration `default:"30s" envconfig:"WRITE_TIMEOUT"`
	}

	Upload struct {
		MaxRows     int   `default:"5000" envconfig:"UPLOAD_MAX_ROWS"`
		MaxBodySize int64 `default:"10485760" envconfig:"UPLOAD_MAX_BODY_SIZE"` // bytes
	}

	// Thresholds override the stock metric policy. Values are percentages
	// as reported on seller dashboards.
	Thresholds struct {
		CTRFloor            float64 `default:"1.0" envconfig:"THRESHOLD_CTR_FLOOR"`
		ConversionFloor     float64 `default:"2.0" envconfig:"THRESHOLD_CONVERSION_FLOOR"`
		CancellationCeiling float64 `default:"5.0" envconfig:"THRESHOLD_CANCELLATION_CEILING"`
		ReturnCeiling       float64 `default:"10.0" envconfig:"THRESHOLD_RETURN_CEILING"`
	}

	Log struct {
		Level string `default:"info" envconfig:"LOG_LEVEL"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	return &cfg, nil
}
