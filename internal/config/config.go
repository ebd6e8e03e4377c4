package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server" json:"server"`
	Client Client `yaml:"client" json:"client"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Client struct {
	// BaseURL is the one environment-provided value the client observes:
	// the root of the remote task API.
	BaseURL        string `yaml:"base_url" json:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080"},
		Client: Client{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 5,
		},
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = d.Client.BaseURL
	}
	if c.Client.TimeoutSeconds <= 0 {
		c.Client.TimeoutSeconds = d.Client.TimeoutSeconds
	}
}

func (c *Client) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the yaml config at path and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKPAD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TASKPAD_BASE_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := getEnvInt("TASKPAD_TIMEOUT_SECONDS"); v > 0 {
		cfg.Client.TimeoutSeconds = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
