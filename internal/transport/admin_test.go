package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Versifine/mcwire/internal/event"
	"github.com/Versifine/mcwire/internal/metrics"
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/packet/serverbound"
	"github.com/Versifine/mcwire/internal/protocol"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s 失败: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("读取响应失败: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestAdminRouter(t *testing.T) {
	set := testSet(t)
	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg))
	m.Decoded("serverbound", "chat", 12)

	ts := httptest.NewServer(NewAdminRouter(context.Background(), AdminOptions{Set: set, Gatherer: reg}))
	defer ts.Close()

	tests := []struct {
		name   string
		path   string
		status int
		want   []string
	}{
		{"健康检查", "/healthz", http.StatusOK, []string{"OK"}},
		{"注册表列表", "/registries", http.StatusOK, []string{
			"version 1\n",
			fmt.Sprintf("fingerprint %016x\n", set.Fingerprint()),
			"item 2\n",
			"entity_type 2\n",
		}},
		{"注册表内容", "/registries/block", http.StatusOK, []string{"0 minecraft:air\n1 minecraft:stone\n"}},
		{"未知注册表", "/registries/biome", http.StatusNotFound, []string{"unknown registry"}},
		{"指标", "/metrics", http.StatusOK, []string{`mcwire_packets_decoded_total{flow="serverbound",packet="chat"} 1`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, ts.URL+tt.path)
			if status != tt.status {
				t.Errorf("状态码 = %d, 期望 %d", status, tt.status)
			}
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("响应 %q 应包含 %q", body, w)
				}
			}
		})
	}
}

func TestWebSocketRoundTrip(t *testing.T) {
	set := testSet(t)
	closed := make(chan event.ConnectionClosed, 1)
	bus := event.NewBus()
	bus.Subscribe(event.EventConnectionClosed, func(raw any) { closed <- raw.(event.ConnectionClosed) })
	srv := NewServer("", set, func(id uuid.UUID, c *ServerConn) (Session, error) {
		return &echoSession{c: c, closed: make(chan struct{})}, nil
	}, Options{Bus: bus})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ts := httptest.NewServer(NewAdminRouter(ctx, AdminOptions{Set: set, WebSocketPath: "/ws", Server: srv}))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("WebSocket 连接失败: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	f, err := serverbound.Protocol().Marshal(serverbound.Chat{Message: "over ws"})
	if err != nil {
		t.Fatalf("Marshal() 返回错误: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, protocol.AppendFrame(nil, f)); err != nil {
		t.Fatalf("WriteMessage() 返回错误: %v", err)
	}

	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() 返回错误: %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Errorf("消息类型 = %d, 期望二进制", mt)
	}
	pkt, err := clientbound.Protocol(set).Decode(data)
	if err != nil {
		t.Fatalf("Decode() 返回错误: %v", err)
	}
	if chat, ok := pkt.(clientbound.SystemChat); !ok || chat.Content != "echo over ws" {
		t.Errorf("收到 %+v, 期望 SystemChat \"echo over ws\"", pkt)
	}

	// 文本消息不是合法的帧
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("WriteMessage() 返回错误: %v", err)
	}
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("ReadMessage() 错误 = %v, 期望服务器正常关闭", err)
	}
	select {
	case evt := <-closed:
		if evt.Reason != "format" {
			t.Errorf("Reason = %q, 期望 format", evt.Reason)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("等待 ConnectionClosed 事件超时")
	}
}
