package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Versifine/mcwire/internal/registry"
)

func TestDecodeFrame(t *testing.T) {
	set, err := registry.FromSnapshot(registry.Snapshot{EntityTypes: []string{"minecraft:pig"}})
	if err != nil {
		t.Fatalf("FromSnapshot() 返回错误: %v", err)
	}

	tests := []struct {
		name    string
		flow    string
		set     *registry.Set
		hex     string
		framed  bool
		wantErr bool
		want    []string
	}{
		{"serverbound keep_alive", "serverbound", nil, "03 00000000 0000002a", false, false, []string{"keep_alive", "ID:42"}},
		{"带长度前缀", "serverbound", nil, "09 03000000000000002a", true, false, []string{"keep_alive"}},
		{"未知包ID", "serverbound", nil, "7f", false, true, []string{"unknown_enum"}},
		{"缺少字节", "serverbound", nil, "03 0000", false, true, []string{"keep_alive.id", "format"}},
		{"clientbound 需要快照", "clientbound", nil, "00", false, true, nil},
		{"clientbound 注册表缺失", "clientbound", set, "00 01" + strings.Repeat("00", 16) + "05", false, true, []string{"registry_miss", "add_entity.type"}},
		{"未知方向", "sideways", nil, "00", false, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := parseHex(tt.hex)
			if err != nil {
				t.Fatalf("parseHex() 返回错误: %v", err)
			}
			res, err := decodeFrame(tt.flow, tt.set, data, tt.framed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeFrame() error = %v, wantErr %v", err, tt.wantErr)
			}
			var buf bytes.Buffer
			res.render(&buf)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("输出应包含 %q, 实际:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	if _, err := parseHex("zz"); err == nil {
		t.Error("非法十六进制应返回错误")
	}
}
