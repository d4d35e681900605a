package clientbound

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/protocol"
)

type addCall struct {
	id                                      uuid.UUID
	name                                    string
	progress                                float32
	color                                   BossBarColor
	overlay                                 BossBarOverlay
	darkenScreen, playMusic, createWorldFog bool
}

type bossRecorder struct {
	calls []string
	add   addCall
}

func (r *bossRecorder) Add(id uuid.UUID, name string, progress float32, color BossBarColor, overlay BossBarOverlay, darkenScreen, playMusic, createWorldFog bool) {
	r.calls = append(r.calls, "add")
	r.add = addCall{id, name, progress, color, overlay, darkenScreen, playMusic, createWorldFog}
}

func (r *bossRecorder) Remove(uuid.UUID) { r.calls = append(r.calls, "remove") }

func (r *bossRecorder) UpdateProgress(uuid.UUID, float32) {
	r.calls = append(r.calls, "update_progress")
}

func (r *bossRecorder) UpdateName(uuid.UUID, string) { r.calls = append(r.calls, "update_name") }

func (r *bossRecorder) UpdateStyle(uuid.UUID, BossBarColor, BossBarOverlay) {
	r.calls = append(r.calls, "update_style")
}

func (r *bossRecorder) UpdateProperties(uuid.UUID, bool, bool, bool) {
	r.calls = append(r.calls, "update_properties")
}

// TestBossEventAddDispatch Add 操作编码后解码, 七个字段应完整到达 Add 方法
func TestBossEventAddDispatch(t *testing.T) {
	id := uuid.MustParse("5f1a2b3c-0000-4000-8000-00000000abcd")
	in := BossEvent{
		ID: id,
		Operation: BossEventAdd{
			Name:     `{"text":"Ender Dragon"}`,
			Progress: 0.75,
			Color:    ColorPurple,
			Overlay:  OverlayNotched10,
			Flags:    BossBarFlags{DarkenScreen: true, PlayMusic: true},
		},
	}

	data, err := bossEventCodec.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal 返回错误: %v", err)
	}
	// uuid, op=0, name, float, color, overlay, flags
	if data[16] != 0x00 {
		t.Errorf("操作标签 = %d, 期望 0", data[16])
	}
	if last := data[len(data)-1]; last != 0b011 {
		t.Errorf("flags = %03b, 期望 011", last)
	}

	out, err := bossEventCodec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal 返回错误: %v", err)
	}
	rec := &bossRecorder{}
	out.Dispatch(rec)

	if len(rec.calls) != 1 || rec.calls[0] != "add" {
		t.Fatalf("调用 = %v, 期望 [add]", rec.calls)
	}
	want := addCall{id, `{"text":"Ender Dragon"}`, 0.75, ColorPurple, OverlayNotched10, true, true, false}
	if rec.add != want {
		t.Errorf("Add(%+v), 期望 %+v", rec.add, want)
	}
}

func TestBossEventFlagsUnpack(t *testing.T) {
	tests := []struct {
		b    byte
		want BossBarFlags
	}{
		{0b000, BossBarFlags{}},
		{0b001, BossBarFlags{DarkenScreen: true}},
		{0b011, BossBarFlags{DarkenScreen: true, PlayMusic: true}},
		{0b100, BossBarFlags{CreateWorldFog: true}},
		{0b111, BossBarFlags{true, true, true}},
	}
	for _, tt := range tests {
		if got := unpackBossBarFlags(tt.b); got != tt.want {
			t.Errorf("unpack(%03b) = %+v, 期望 %+v", tt.b, got, tt.want)
		}
		if got := tt.want.pack(); got != tt.b {
			t.Errorf("pack(%+v) = %03b, 期望 %03b", tt.want, got, tt.b)
		}
	}
}

func TestBossEventOperations(t *testing.T) {
	ops := []struct {
		op   BossEventOperation
		call string
	}{
		{BossEventRemove{}, "remove"},
		{BossEventUpdateProgress{Progress: 0.1}, "update_progress"},
		{BossEventUpdateName{Name: "x"}, "update_name"},
		{BossEventUpdateStyle{Color: ColorRed, Overlay: OverlayNotched20}, "update_style"},
		{BossEventUpdateProperties{Flags: BossBarFlags{CreateWorldFog: true}}, "update_properties"},
	}
	for _, tt := range ops {
		t.Run(tt.call, func(t *testing.T) {
			in := BossEvent{ID: uuid.New(), Operation: tt.op}
			data, err := bossEventCodec.Marshal(in)
			if err != nil {
				t.Fatalf("Marshal 返回错误: %v", err)
			}
			out, err := bossEventCodec.Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal 返回错误: %v", err)
			}
			if out != in {
				t.Errorf("往返得到 %+v, 期望 %+v", out, in)
			}
			rec := &bossRecorder{}
			out.Dispatch(rec)
			if len(rec.calls) != 1 || rec.calls[0] != tt.call {
				t.Errorf("调用 = %v, 期望 [%s]", rec.calls, tt.call)
			}
		})
	}
}

func TestBossEventBadColor(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 16))
	buf.Write([]byte{0x00, 0x00})             // add, empty name
	buf.Write([]byte{0x3F, 0x80, 0x00, 0x00}) // 1.0
	buf.Write([]byte{0x07, 0x00, 0x00})       // color 7 is out of range

	_, err := bossEventCodec.Unmarshal(buf.Bytes())
	if !errors.Is(err, protocol.ErrUnknownEnum) {
		t.Fatalf("期望 ErrUnknownEnum, 实际: %v", err)
	}
	if got := protocol.Field(err); got != "add.color" {
		t.Errorf("Field() = %q, 期望 add.color", got)
	}
}

func TestBossEventNilOperation(t *testing.T) {
	if _, err := bossEventCodec.Marshal(BossEvent{ID: uuid.New()}); err == nil {
		t.Error("没有操作的 BossEvent 应无法编码")
	}
}
