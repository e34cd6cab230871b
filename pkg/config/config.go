package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"

	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvServerURL  = "FRONTLINE_SERVER_URL"
	EnvLogLevel   = "FRONTLINE_LOG_LEVEL"
	EnvUI         = "FRONTLINE_UI"
	EnvPlayerName = "FRONTLINE_PLAYER_NAME"
	EnvCompress   = "FRONTLINE_COMPRESS"
)

const (
	DefaultServerURL = "ws://localhost:5000/ws"
	DefaultLogLevel  = "info"
	DefaultEnvFile   = ".env"
)

// UIKind selects the client front end.
type UIKind string

const (
	UIEbiten   UIKind = "ebiten"
	UITerminal UIKind = "terminal"
)

type Config struct {
	ServerURL  string
	LogLevel   string
	UI         UIKind
	PlayerName string
	// Compress sends binary zstd frames instead of JSON text frames.
	Compress bool
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ServerURL:  DefaultServerURL,
		LogLevel:   DefaultLogLevel,
		UI:         UIEbiten,
		PlayerName: constants.DefaultPlayerName,
	}
}

// Load reads the given env files (or .env when none are given) and then the environment.
// A missing default .env file is not an error; explicitly named files must exist.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load %s: %v", DefaultEnvFile, err)
			}
		} else {
			log.Debug("Loaded environment from %s", DefaultEnvFile)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("failed to load env files %v: %v", files, err)
	}

	cfg := Default()
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvUI); v != "" {
		cfg.UI = UIKind(v)
	}
	if v := os.Getenv(EnvPlayerName); v != "" {
		cfg.PlayerName = v
	}
	if v := os.Getenv(EnvCompress); v != "" {
		compress, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %v", EnvCompress, err)
		}
		cfg.Compress = compress
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail later at dial or startup.
func (c *Config) Validate() error {
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %v", err)
	}
	switch c.UI {
	case UIEbiten, UITerminal:
	default:
		return fmt.Errorf("unknown ui %q: expected %q or %q", c.UI, UIEbiten, UITerminal)
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server url: %v", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid server url %q: scheme must be ws or wss", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server url %q: missing host", c.ServerURL)
	}
	return nil
}
