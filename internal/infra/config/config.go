package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DiscordToken     string
	ChallongeAPIKey  string
	ChallongeBaseURL string
	AllowedRoleIDs   []string
	CommandGuildIDs  []string

	DatabaseURL string // opcional: sin DB no hay historial
	HTTPAddr    string // opcional: sin addr no hay ops server

	TeardownPollInterval time.Duration
	TeardownTimeout      time.Duration
	LogLevel             zerolog.Level
}

// JanitorConfig es lo único que necesita la Lambda de limpieza.
type JanitorConfig struct {
	DatabaseURL      string
	RunRetentionDays int
}

func Load() Config {
	cfg, err := load(os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	return cfg
}

func LoadJanitor() (JanitorConfig, error) {
	return loadJanitor(os.Getenv)
}

func loadJanitor(getenv func(string) string) (JanitorConfig, error) {
	days, err := retentionDays(strings.TrimSpace(getenv("RUN_RETENTION_DAYS")))
	if err != nil {
		return JanitorConfig{}, err
	}
	return JanitorConfig{
		DatabaseURL:      strings.TrimSpace(getenv("DATABASE_URL")),
		RunRetentionDays: days,
	}, nil
}

func retentionDays(v string) (int, error) {
	if v == "" {
		return 30, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("RUN_RETENTION_DAYS %q: must be a positive integer", v)
	}
	return n, nil
}

func positiveDuration(key, v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s %q: must be a positive duration", key, v)
	}
	return d, nil
}

func load(getenv func(string) string) (Config, error) {
	var missing []string
	get := func(k string, req bool) string {
		v := strings.TrimSpace(getenv(k))
		if v == "" && req {
			missing = append(missing, k)
		}
		return v
	}

	cfg := Config{
		DiscordToken:     get("DISCORD_BOT_TOKEN", true),
		ChallongeAPIKey:  get("CHALLONGE_API_KEY", true),
		ChallongeBaseURL: get("CHALLONGE_BASE_URL", false),
		AllowedRoleIDs:   splitIDs(get("ALLOWED_ROLE_IDS", true)),
		CommandGuildIDs:  splitIDs(get("COMMAND_GUILD_IDS", true)),
		DatabaseURL:      get("DATABASE_URL", false),
		HTTPAddr:         get("HTTP_ADDR", false),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("faltante env %s", strings.Join(missing, ", "))
	}
	if cfg.ChallongeBaseURL == "" {
		cfg.ChallongeBaseURL = "https://api.challonge.com/v1"
	}
	if len(cfg.AllowedRoleIDs) == 0 {
		return Config{}, fmt.Errorf("ALLOWED_ROLE_IDS: no role ids")
	}
	if len(cfg.CommandGuildIDs) == 0 {
		return Config{}, fmt.Errorf("COMMAND_GUILD_IDS: no guild ids")
	}

	var err error
	if cfg.TeardownPollInterval, err = positiveDuration("TEARDOWN_POLL_INTERVAL", get("TEARDOWN_POLL_INTERVAL", false), time.Second); err != nil {
		return Config{}, err
	}
	if cfg.TeardownTimeout, err = positiveDuration("TEARDOWN_TIMEOUT", get("TEARDOWN_TIMEOUT", false), 2*time.Minute); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = zerolog.InfoLevel
	if v := get("LOG_LEVEL", false); v != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// splitIDs acepta ids separados por coma o espacios.
func splitIDs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
