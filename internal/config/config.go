package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/mcwire/internal/protocol"
)

type Config struct {
	Listen    ListenConfig    `yaml:"listen"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Admin     ListenConfig    `yaml:"admin"`
	Logging   LoggingConfig   `yaml:"logging"`
	Limits    LimitsConfig    `yaml:"limits"`
	Registry  RegistryConfig  `yaml:"registry"`
	Game      GameConfig      `yaml:"game"`
}

type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (c ListenConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// WebSocketConfig serves the same protocol over the admin listener, one
// binary message per frame.
type WebSocketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type LimitsConfig struct {
	MaxPacketSize int `yaml:"max_packet_size"`
}

type RegistryConfig struct {
	Snapshot string `yaml:"snapshot"`
}

// GameConfig configures the play sessions. Advancements is optional; without
// it no triggers are registered.
type GameConfig struct {
	Advancements string     `yaml:"advancements"`
	Spawn        [3]float64 `yaml:"spawn,flow"`
}

func Default() *Config {
	return &Config{
		Listen:    ListenConfig{Host: "0.0.0.0", Port: 25565},
		WebSocket: WebSocketConfig{Enabled: false, Path: "/ws"},
		Admin:     ListenConfig{Host: "127.0.0.1", Port: 9100},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
		Limits:    LimitsConfig{MaxPacketSize: protocol.MaxPacketSize},
		Game:      GameConfig{Spawn: [3]float64{0.5, 0, 0.5}},
	}
}

// Load reads path over Default, so omitted keys keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		return fmt.Errorf("config: listen.port %d out of range", c.Listen.Port)
	}
	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		return fmt.Errorf("config: admin.port %d out of range", c.Admin.Port)
	}
	if c.Limits.MaxPacketSize <= 0 || c.Limits.MaxPacketSize > protocol.MaxPacketSize {
		return fmt.Errorf("config: limits.max_packet_size must be in (0, %d], got %d",
			protocol.MaxPacketSize, c.Limits.MaxPacketSize)
	}
	if c.WebSocket.Enabled && (c.WebSocket.Path == "" || c.WebSocket.Path[0] != '/') {
		return fmt.Errorf("config: websocket.path %q must start with /", c.WebSocket.Path)
	}
	return nil
}
