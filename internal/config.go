package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the user-tunable part of the pipeline. Built-in tables
// (vocabulary aliases, rejection words) are merged with these entries;
// user entries take precedence.
type Config struct {
	// TargetSender is the single ledger owner. Only this sender's
	// messages become transactions; everyone else's are dropped.
	TargetSender string `yaml:"target_sender"`

	// MaxItemAmount rejects per-item prices above this value (structured
	// totals are exempt). Defaults to 1000.
	MaxItemAmount float64 `yaml:"max_item_amount,omitempty"`

	// SimilarityThreshold is the character-set Jaccard bar for merging
	// near-duplicate item names. Defaults to 0.5.
	SimilarityThreshold float64 `yaml:"similarity_threshold,omitempty"`

	// Aliases maps raw tokens to canonical item names, merged over the
	// built-in vocabulary.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// RejectWords adds tokens to the built-in item rejection list.
	RejectWords []string `yaml:"reject_words,omitempty"`
}

// NewDefaultConfig returns the configuration used when no config file
// exists.
func NewDefaultConfig() *Config {
	return &Config{
		TargetSender:        "monir",
		MaxItemAmount:       MaxItemAmount,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}

// DefaultConfigPath returns ~/.bazar-ledger/config.yaml, or "" if the
// home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bazar-ledger", "config.yaml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.TargetSender == "" {
		cfg.TargetSender = NewDefaultConfig().TargetSender
	}
	if cfg.MaxItemAmount <= 0 {
		cfg.MaxItemAmount = MaxItemAmount
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
