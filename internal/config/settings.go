package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServerAddress = "127.0.0.1:8000"

const (
	defaultVisiblePollMS = 2000
	defaultHiddenPollMS  = 4000
	defaultMaxPerCycle   = 10
	defaultHistoryLimit  = 50
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Poll    PollConfig    `toml:"poll"`
	Logging LoggingConfig `toml:"logging"`
	Chat    ChatConfig    `toml:"chat"`
}

type ServerConfig struct {
	Address string `toml:"address"`
}

type PollConfig struct {
	VisibleIntervalMS int `toml:"visible_interval_ms"`
	HiddenIntervalMS  int `toml:"hidden_interval_ms"`
	MaxPerCycle       int `toml:"max_per_cycle"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type ChatConfig struct {
	HistoryLimit int `toml:"history_limit"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Address: defaultServerAddress,
		},
		Poll: PollConfig{
			VisibleIntervalMS: defaultVisiblePollMS,
			HiddenIntervalMS:  defaultHiddenPollMS,
			MaxPerCycle:       defaultMaxPerCycle,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Chat: ChatConfig{
			HistoryLimit: defaultHistoryLimit,
		},
	}
}

// Load reads the config file, applying defaults for anything unset. A
// missing file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) ServerAddress() string {
	addr := strings.TrimSpace(c.Server.Address)
	if addr == "" {
		return defaultServerAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func (c Config) ServerBaseURL() string {
	return "http://" + c.ServerAddress()
}

func (c Config) VisibleInterval() time.Duration {
	if c.Poll.VisibleIntervalMS <= 0 {
		return defaultVisiblePollMS * time.Millisecond
	}
	return time.Duration(c.Poll.VisibleIntervalMS) * time.Millisecond
}

func (c Config) HiddenInterval() time.Duration {
	if c.Poll.HiddenIntervalMS <= 0 {
		return defaultHiddenPollMS * time.Millisecond
	}
	return time.Duration(c.Poll.HiddenIntervalMS) * time.Millisecond
}

func (c Config) MaxEventsPerCycle() int {
	if c.Poll.MaxPerCycle <= 0 {
		return defaultMaxPerCycle
	}
	return c.Poll.MaxPerCycle
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) HistoryLimit() int {
	if c.Chat.HistoryLimit <= 0 {
		return defaultHistoryLimit
	}
	return c.Chat.HistoryLimit
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
