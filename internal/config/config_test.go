package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Versifine/mcwire/internal/protocol"
)

// TestLoad 使用表驱动测试覆盖配置加载的核心场景
func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "正常加载有效YAML",
			createFile: true,
			content: `listen:
  host: "127.0.0.1"
  port: 25565
websocket:
  enabled: true
  path: "/play"
admin:
  host: "0.0.0.0"
  port: 9200
logging:
  level: "debug"
  format: "json"
  file: "mcwire.log"
limits:
  max_packet_size: 65536
registry:
  snapshot: "registries.yaml"
game:
  advancements: "advancements.yaml"
  spawn: [8.5, 64, -3.5]
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Listen.Addr() != "127.0.0.1:25565" {
					t.Errorf("Listen.Addr() = %q, 期望 %q", cfg.Listen.Addr(), "127.0.0.1:25565")
				}
				if !cfg.WebSocket.Enabled || cfg.WebSocket.Path != "/play" {
					t.Errorf("WebSocket = %+v", cfg.WebSocket)
				}
				if cfg.Admin.Port != 9200 {
					t.Errorf("Admin.Port = %d, 期望 %d", cfg.Admin.Port, 9200)
				}
				if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.File != "mcwire.log" {
					t.Errorf("Logging = %+v", cfg.Logging)
				}
				if cfg.Limits.MaxPacketSize != 65536 {
					t.Errorf("Limits.MaxPacketSize = %d, 期望 %d", cfg.Limits.MaxPacketSize, 65536)
				}
				if cfg.Registry.Snapshot != "registries.yaml" {
					t.Errorf("Registry.Snapshot = %q, 期望 %q", cfg.Registry.Snapshot, "registries.yaml")
				}
				if cfg.Game.Advancements != "advancements.yaml" || cfg.Game.Spawn != [3]float64{8.5, 64, -3.5} {
					t.Errorf("Game = %+v", cfg.Game)
				}
			},
		},
		{
			name:       "文件不存在",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("期望文件不存在错误，实际: %v", err)
				}
			},
		},
		{
			name:       "YAML格式错误",
			createFile: true,
			content: `listen:
  host: "127.0.0.1"
  port: [25565
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("期望返回YAML解析错误，实际: %v", err)
				}
			},
		},
		{
			name:       "空文件使用默认值",
			createFile: true,
			content:    "",
			wantErr:    false,
			validate: func(t *testing.T, cfg *Config, err error) {
				def := Default()
				if cfg.Listen != def.Listen || cfg.Admin != def.Admin {
					t.Errorf("Listen/Admin 应为默认值，实际 %+v %+v", cfg.Listen, cfg.Admin)
				}
				if cfg.Limits.MaxPacketSize != protocol.MaxPacketSize {
					t.Errorf("MaxPacketSize = %d, 期望 %d", cfg.Limits.MaxPacketSize, protocol.MaxPacketSize)
				}
				if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
					t.Errorf("Logging 应为默认值，实际 %+v", cfg.Logging)
				}
			},
		},
		{
			name:       "包大小超过上限",
			createFile: true,
			content:    "limits:\n  max_packet_size: 4194304\n",
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "max_packet_size") {
					t.Errorf("期望 max_packet_size 错误，实际: %v", err)
				}
			},
		},
		{
			name:       "端口越界",
			createFile: true,
			content:    "listen:\n  port: 70000\n",
			wantErr:    true,
		},
		{
			name:       "websocket 路径无效",
			createFile: true,
			content:    "websocket:\n  enabled: true\n  path: \"ws\"\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("创建测试配置文件失败: %v", err)
				}
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && cfg == nil {
				t.Fatalf("Load() 返回了 nil 配置")
			}

			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() 返回错误: %v", err)
	}
}
