package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/meridianrcm/denialflow/internal/inference"
)

// LoadInferenceConfig loads text-classifier configuration. Precedence:
// 1. Viper configuration (config file or DENIALFLOW_ env vars)
// 2. Direct environment variables (OPENAI_API_KEY)
// 3. Defaults (the offline keyword provider)
func LoadInferenceConfig() inference.Config {
	cfg := inference.Config{
		Provider:    viper.GetString("inference.provider"),
		APIKey:      viper.GetString("inference.api_key"),
		Model:       viper.GetString("inference.model"),
		Endpoint:    viper.GetString("inference.endpoint"),
		MaxRetries:  viper.GetInt("inference.max_retries"),
		MaxTokens:   viper.GetInt("inference.max_tokens"),
		Temperature: viper.GetFloat64("inference.temperature"),
	}

	if v := viper.GetDuration("inference.retry_delay"); v > 0 {
		cfg.RetryDelay = v
	} else {
		cfg.RetryDelay = time.Second
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg
}
