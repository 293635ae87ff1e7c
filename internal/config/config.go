package config

import (
	"time"

	"pulsestudy/internal/ai"
	"pulsestudy/internal/engine"
)

// Config is the pulse configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means ~/.pulse/pulse.db.
	DBPath string      `yaml:"db_path" mapstructure:"db_path"`
	AI     AIConfig    `yaml:"ai" mapstructure:"ai"`
	Focus  FocusConfig `yaml:"focus" mapstructure:"focus"`
}

// AIConfig configures the Gemini gateways. An empty APIKey selects offline mode.
type AIConfig struct {
	APIKey         string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	ModeratorModel string `yaml:"moderator_model" mapstructure:"moderator_model"`
	PlannerModel   string `yaml:"planner_model" mapstructure:"planner_model"`
	ChatModel      string `yaml:"chat_model" mapstructure:"chat_model"`
	Timeout        string `yaml:"timeout" mapstructure:"timeout"`
}

// FocusConfig holds the defaults used before the user changes them.
type FocusConfig struct {
	Duration  int `yaml:"duration" mapstructure:"duration"`
	DailyGoal int `yaml:"daily_goal" mapstructure:"daily_goal"`
}

// Gateway converts the AI section into the client configuration. An
// unparsable timeout falls back to the client default.
func (c AIConfig) Gateway() ai.Config {
	timeout, _ := time.ParseDuration(c.Timeout)
	return ai.Config{
		APIKey:         c.APIKey,
		BaseURL:        c.BaseURL,
		ModeratorModel: c.ModeratorModel,
		PlannerModel:   c.PlannerModel,
		ChatModel:      c.ChatModel,
		Timeout:        timeout,
	}
}

// ServiceOptions returns the engine options derived from the config.
func (c *Config) ServiceOptions() []engine.Option {
	opts := ai.NewGateways(c.AI.Gateway()).Options()
	return append(opts, engine.WithDefaults(c.Focus.Duration, c.Focus.DailyGoal))
}
