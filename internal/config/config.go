package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved application configuration.
type Config struct {
	Path     string
	Runtime  string
	DataDir  string
	Storage  Storage
	Ministry Ministry
	Log      Log

	// Warnings lists values that were ignored in favour of defaults.
	Warnings []string
}

// Storage configures persistence.
type Storage struct {
	Debounce      time.Duration
	Grace         time.Duration
	MirrorFile    bool
	KV            string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// Ministry configures the ministry service client.
type Ministry struct {
	BaseURL       string
	Timeout       time.Duration
	SubmitTimeout time.Duration
}

// Log configures the application log.
type Log struct {
	Level  string
	File   string
	Pretty bool
}

const (
	RuntimeNative = "native"
	RuntimeWeb    = "web"

	KVNone   = ""
	KVMemory = "memory"
	KVRedis  = "redis"
)

const (
	defaultConfigPath    = "~/.config/rased/config.toml"
	defaultDataDir       = "~/.local/share/rased"
	defaultLogName       = "rased.log"
	defaultDebounce      = 2 * time.Second
	defaultGrace         = time.Second
	defaultKeyPrefix     = "rased:"
	defaultRedisAddr     = "127.0.0.1:6379"
	defaultBaseURL       = "https://mobile.moe.gov.om/Sakhr.Elasip.Portal.Mobility/Services/MTletIt.svc"
	defaultTimeout       = 10 * time.Second
	defaultSubmitTimeout = 20 * time.Second
	defaultLevel         = "info"
)

type rawConfig struct {
	Runtime string `toml:"runtime"`
	DataDir string `toml:"data_dir"`
	Storage struct {
		Debounce      string `toml:"debounce"`
		Grace         string `toml:"grace"`
		MirrorFile    bool   `toml:"mirror_file"`
		KV            string `toml:"kv"`
		RedisAddr     string `toml:"redis_addr"`
		RedisPassword string `toml:"redis_password"`
		RedisDB       int    `toml:"redis_db"`
		KeyPrefix     string `toml:"key_prefix"`
	} `toml:"storage"`
	Ministry struct {
		BaseURL       string `toml:"base_url"`
		Timeout       string `toml:"timeout"`
		SubmitTimeout string `toml:"submit_timeout"`
	} `toml:"ministry"`
	Log struct {
		Level  string `toml:"level"`
		File   string `toml:"file"`
		Pretty bool   `toml:"pretty"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg, _ := build(rawConfig{}, mustExpand(defaultConfigPath))
	return cfg
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return build(rawConfig{}, resolved)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return build(raw, resolved)
}

func build(raw rawConfig, path string) (Config, error) {
	cfg := Config{Path: path}

	cfg.Runtime = strings.ToLower(strings.TrimSpace(raw.Runtime))
	switch cfg.Runtime {
	case "":
		cfg.Runtime = RuntimeNative
	case RuntimeNative, RuntimeWeb:
	default:
		return Config{}, fmt.Errorf("parse config: unknown runtime %q", raw.Runtime)
	}

	dataDir := strings.TrimSpace(raw.DataDir)
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	expanded, err := expandPath(dataDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve data_dir: %w", err)
	}
	cfg.DataDir = expanded

	cfg.Storage = Storage{
		Debounce:      cfg.duration("storage.debounce", raw.Storage.Debounce, defaultDebounce, false),
		Grace:         cfg.duration("storage.grace", raw.Storage.Grace, defaultGrace, true),
		MirrorFile:    raw.Storage.MirrorFile,
		KV:            strings.ToLower(strings.TrimSpace(raw.Storage.KV)),
		RedisAddr:     strings.TrimSpace(raw.Storage.RedisAddr),
		RedisPassword: raw.Storage.RedisPassword,
		RedisDB:       raw.Storage.RedisDB,
		KeyPrefix:     strings.TrimSpace(raw.Storage.KeyPrefix),
	}
	switch cfg.Storage.KV {
	case KVNone, KVMemory, KVRedis:
	default:
		return Config{}, fmt.Errorf("parse config: unknown storage.kv %q", raw.Storage.KV)
	}
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = defaultRedisAddr
	}
	if cfg.Storage.KeyPrefix == "" {
		cfg.Storage.KeyPrefix = defaultKeyPrefix
	}

	cfg.Ministry = Ministry{
		BaseURL:       strings.TrimSpace(raw.Ministry.BaseURL),
		Timeout:       cfg.duration("ministry.timeout", raw.Ministry.Timeout, defaultTimeout, false),
		SubmitTimeout: cfg.duration("ministry.submit_timeout", raw.Ministry.SubmitTimeout, defaultSubmitTimeout, false),
	}
	if cfg.Ministry.BaseURL == "" {
		cfg.Ministry.BaseURL = defaultBaseURL
	}

	cfg.Log = Log{
		Level:  strings.ToLower(strings.TrimSpace(raw.Log.Level)),
		File:   strings.TrimSpace(raw.Log.File),
		Pretty: raw.Log.Pretty,
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLevel
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, defaultLogName)
	} else {
		cfg.Log.File = mustExpand(cfg.Log.File)
	}
	return cfg, nil
}

// duration parses a Go duration string. Empty means def; an invalid or
// out-of-range value is recorded in Warnings and replaced by def.
func (c *Config) duration(key, value string, def time.Duration, allowNegative bool) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s: invalid duration %q, using %s", key, value, def))
		return def
	}
	if d <= 0 && !allowNegative {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s: must be positive, using %s", key, def))
		return def
	}
	return d
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
