package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the variable holding an optional YAML config file path
const FileEnv = "MEXICANO_CONFIG"

// Config holds the settings of the bot process
type Config struct {
	Redis      RedisConfig      `yaml:"redis"`
	Discord    DiscordConfig    `yaml:"discord"`
	Tournament TournamentConfig `yaml:"tournament"`

	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level"`

	// MetricsAddr is where /metrics is served, disabled when empty
	MetricsAddr string `yaml:"metrics_addr"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
}

type TournamentConfig struct {
	// Courts are the labels given to matches in order
	Courts []string `yaml:"courts"`

	// MinPlayers is the smallest pool a tournament can start with
	MinPlayers int `yaml:"min_players"`

	// RandomSeed seeds pairing randomness, 0 seeds from the clock
	RandomSeed int64 `yaml:"random_seed"`

	// AvoidRepeatPartners splits teams that drew together
	AvoidRepeatPartners bool `yaml:"avoid_repeat_partners"`
}

// Default returns the built in settings
func Default() *Config {
	return &Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Tournament: TournamentConfig{
			Courts:              []string{"Court 1", "Court 2", "Court 3", "Court 4"},
			MinPlayers:          4,
			AvoidRepeatPartners: true,
		},
		LogLevel: "info",
	}
}

// Load reads .env if present, then the YAML file named by MEXICANO_CONFIG,
// then environment overrides.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("DISCORD_TOKEN", &c.Discord.Token)
	setString("APPLICATION_ID", &c.Discord.ApplicationID)
	setString("GUILD_ID", &c.Discord.GuildID)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("METRICS_ADDR", &c.MetricsAddr)

	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}

	if v, ok := lookup("COURTS"); ok && v != "" {
		courts := make([]string, 0)
		for _, court := range strings.Split(v, ",") {
			if court = strings.TrimSpace(court); court != "" {
				courts = append(courts, court)
			}
		}
		c.Tournament.Courts = courts
	}

	if v, ok := lookup("MIN_PLAYERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MIN_PLAYERS: %w", err)
		}
		c.Tournament.MinPlayers = n
	}

	if v, ok := lookup("RANDOM_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RANDOM_SEED: %w", err)
		}
		c.Tournament.RandomSeed = seed
	}

	if v, ok := lookup("AVOID_REPEAT_PARTNERS"); ok && v != "" {
		avoid, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AVOID_REPEAT_PARTNERS: %w", err)
		}
		c.Tournament.AvoidRepeatPartners = avoid
	}

	return nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	if c.Redis.Addr == "" {
		return errors.New("redis address cannot be empty")
	}

	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db must not be negative, got %d", c.Redis.DB)
	}

	if len(c.Tournament.Courts) == 0 {
		return errors.New("at least one court is required")
	}

	if c.Tournament.MinPlayers < 1 {
		return fmt.Errorf("min players must be at least 1, got %d", c.Tournament.MinPlayers)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
