// internal/matching/config.go
package matching

import (
	"time"

	"question-service/internal/common/config"
)

type Config struct {
	Timeout        time.Duration // per-request deadline (validation + selection)
	PublishTimeout time.Duration // confirm wait for the reply publish
}

func LoadConfig(cfg config.MatchingConfig) *Config {
	return &Config{
		Timeout:        time.Duration(cfg.Timeout) * time.Millisecond,
		PublishTimeout: time.Duration(cfg.PublishTO) * time.Millisecond,
	}
}
