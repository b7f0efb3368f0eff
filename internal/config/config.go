// Package config loads locm settings. Environment variables override the
// YAML file, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/peterkuimelis/locm/internal/game"
)

// EnvPrefix prefixes every environment override, e.g. LOCM_RULES_TURN_LIMIT.
const EnvPrefix = "LOCM"

// Config is the full application configuration.
type Config struct {
	Rules       game.Rules     `mapstructure:"rules"`
	CatalogPath string         `mapstructure:"catalog_path"` // YAML or cardlist.txt; empty = embedded catalog
	Log         LoggingConfig  `mapstructure:"log"`
	Storage     StorageConfig  `mapstructure:"storage"`
	SelfPlay    SelfPlayConfig `mapstructure:"selfplay"`
}

// LoggingConfig configures the operational logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// SelfPlayConfig sets defaults for the selfplay command.
type SelfPlayConfig struct {
	Games      int    `mapstructure:"games"`
	Workers    int    `mapstructure:"workers"`
	Seed       int64  `mapstructure:"seed"`
	First      string `mapstructure:"first"`
	Second     string `mapstructure:"second"`
	KeepStates bool   `mapstructure:"keep_states"`
}

func setDefaults(v *viper.Viper) {
	r := game.DefaultRules()
	v.SetDefault("rules.starting_hp", r.StartingHP)
	v.SetDefault("rules.rune_step", r.RuneStep)
	v.SetDefault("rules.max_mana", r.MaxMana)
	v.SetDefault("rules.lane_size", r.LaneSize)
	v.SetDefault("rules.hand_limit", r.HandLimit)
	v.SetDefault("rules.deck_size", r.DeckSize)
	v.SetDefault("rules.draft_choices", r.DraftChoices)
	v.SetDefault("rules.draft_pool_size", r.DraftPoolSize)
	v.SetDefault("rules.opening_hand_first", r.OpeningHandFirst)
	v.SetDefault("rules.opening_hand_second", r.OpeningHandSecond)
	v.SetDefault("rules.turn_limit", r.TurnLimit)
	v.SetDefault("rules.deck_out", string(r.DeckOut))

	v.SetDefault("catalog_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("storage.path", "~/.locm/games.db")

	v.SetDefault("selfplay.games", 100)
	v.SetDefault("selfplay.workers", 0)
	v.SetDefault("selfplay.seed", 0)
	v.SetDefault("selfplay.first", "rules")
	v.SetDefault("selfplay.second", "random")
	v.SetDefault("selfplay.keep_states", false)
}

// Load reads configuration. With an explicit path the file must exist;
// otherwise ./locm.yaml is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("locm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read locm.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.SelfPlay.Games < 0 {
		return fmt.Errorf("config: selfplay.games cannot be negative")
	}
	return nil
}

// Catalog loads the configured card catalog.
func (c *Config) Catalog() (*game.Catalog, error) {
	if c.CatalogPath == "" {
		return game.DefaultCatalog(), nil
	}
	return game.LoadCatalogFile(c.CatalogPath)
}
