package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pulsestudy/internal/ai"
	"pulsestudy/internal/engine"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			BaseURL:        ai.DefaultBaseURL,
			ModeratorModel: ai.DefaultModeratorModel,
			PlannerModel:   ai.DefaultPlannerModel,
			ChatModel:      ai.DefaultChatModel,
			Timeout:        ai.DefaultTimeout.String(),
		},
		Focus: FocusConfig{
			Duration:  engine.DefaultFocusMinutes,
			DailyGoal: engine.DefaultDailyGoal,
		},
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config marshal: %w", err)
	}
	return out, nil
}

// WriteDefault writes the default configuration to path, creating its directory.
func WriteDefault(path string) error {
	body, err := Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	content := append([]byte("# Pulse configuration\n# ai.api_key empty = offline mode (GEMINI_API_KEY also works)\n"), body...)
	return os.WriteFile(path, content, 0o600)
}
