package clientbound

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

func testSet(t *testing.T) *registry.Set {
	t.Helper()
	set, err := registry.FromSnapshot(registry.Snapshot{
		Version:     1,
		Blocks:      []string{"minecraft:air", "minecraft:stone", "minecraft:dirt"},
		Items:       []string{"minecraft:air", "minecraft:stick", "minecraft:apple"},
		EntityTypes: []string{"minecraft:pig", "minecraft:zombie"},
		Sounds:      []string{"minecraft:block.stone.break", "minecraft:entity.pig.ambient"},
	})
	if err != nil {
		t.Fatalf("FromSnapshot 返回错误: %v", err)
	}
	return set
}

// recorder remembers the last packet and which handler received it.
type recorder struct {
	method string
	last   Packet
}

func (r *recorder) got(method string, p Packet) { r.method, r.last = method, p }

func (r *recorder) HandleAddEntity(p AddEntity) { r.got("AddEntity", p) }
func (r *recorder) HandleBlockUpdate(p BlockUpdate) { r.got("BlockUpdate", p) }
func (r *recorder) HandleBossEvent(p BossEvent) { r.got("BossEvent", p) }
func (r *recorder) HandleCommandSuggestions(p CommandSuggestions) {
	r.got("CommandSuggestions", p)
}
func (r *recorder) HandleContainerSetSlot(p ContainerSetSlot) { r.got("ContainerSetSlot", p) }
func (r *recorder) HandleKeepAlive(p KeepAlive) { r.got("KeepAlive", p) }
func (r *recorder) HandleLightUpdate(p LightUpdate) { r.got("LightUpdate", p) }
func (r *recorder) HandleMoveEntity(p MoveEntity) { r.got("MoveEntity", p.(Packet)) }
func (r *recorder) HandleRemoveEntities(p RemoveEntities) { r.got("RemoveEntities", p) }
func (r *recorder) HandleSetTime(p SetTime) { r.got("SetTime", p) }
func (r *recorder) HandleSound(p Sound) { r.got("Sound", p) }
func (r *recorder) HandleSystemChat(p SystemChat) { r.got("SystemChat", p) }
func (r *recorder) HandleTeleportEntity(p TeleportEntity) { r.got("TeleportEntity", p) }

func TestProtocolRoundTrip(t *testing.T) {
	set := testSet(t)
	proto := Protocol(set)
	stick, _ := set.Items.ByName("minecraft:stick")
	stone, _ := set.Blocks.ByName("minecraft:stone")
	zombie, _ := set.EntityTypes.ByName("minecraft:zombie")
	pigSound, _ := set.Sounds.ByName("minecraft:entity.pig.ambient")
	tooltip := "teleport"

	tests := []struct {
		method string
		p      Packet
	}{
		{"KeepAlive", KeepAlive{ID: 1234567890123}},
		{"SystemChat", SystemChat{Content: "hello", Overlay: true}},
		{"SetTime", SetTime{GameTime: 24000, DayTime: -6000, TickDayTime: true}},
		{"BossEvent", BossEvent{ID: uuid.New(), Operation: BossEventUpdateName{Name: "Wither"}}},
		{"ContainerSetSlot", ContainerSetSlot{ContainerID: 0, StateID: 7, Slot: 36, Item: registry.ItemStack{Item: stick, Count: 3}}},
		{"ContainerSetSlot", ContainerSetSlot{ContainerID: -1, StateID: 8, Slot: -1}},
		{"CommandSuggestions", CommandSuggestions{ID: 4, Start: 1, Length: 2, Suggestions: []Suggestion{{Text: "tp"}, {Text: "tell", Tooltip: &tooltip}}}},
		{"BlockUpdate", BlockUpdate{Pos: protocol.BlockPos{X: -5, Y: 70, Z: 12}, Block: stone}},
		{"AddEntity", AddEntity{
			EntityID:   42,
			UUID:       uuid.New(),
			EntityType: zombie,
			Pos:        protocol.Vec3{X: 1.5, Y: 64, Z: -3.25},
			Look:       Look{XRot: 45, YRot: -90, HeadYRot: 90},
			Velocity:   protocol.Vec3{X: 0.5, Y: -0.125},
		}},
		{"MoveEntity", MoveEntityPos{EntityID: 42, DX: 4096, DY: -1, DZ: 0, IsOnGround: true}},
		{"MoveEntity", MoveEntityRot{EntityID: 42, YRot: 180 - 360, XRot: 0}},
		{"MoveEntity", MoveEntityPosRot{EntityID: 42, DX: 1, DY: 2, DZ: 3, YRot: 45, XRot: -45}},
		{"TeleportEntity", TeleportEntity{EntityID: 42, Pos: protocol.Vec3{X: 1e6, Y: -64, Z: 0.1}, YRot: 90}},
		{"RemoveEntities", RemoveEntities{EntityIDs: []int32{1, 2, 300}}},
		{"Sound", Sound{Sound: pigSound, Source: SourceNeutral, Pos: protocol.Vec3{X: 1.125, Y: 64, Z: -2.5}, Volume: 1, Pitch: 0.8, Seed: -99}},
		{"LightUpdate", LightUpdate{
			ChunkX:       3,
			ChunkZ:       -7,
			SkyMask:      protocol.NewBitSet(1, 2),
			EmptySkyMask: protocol.NewBitSet(0),
			SkyUpdates:   [][]byte{make([]byte, LightSectionSize), make([]byte, LightSectionSize)},
			BlockUpdates: [][]byte{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.p.Type().Name, func(t *testing.T) {
			frame, err := proto.Marshal(tt.p)
			if err != nil {
				t.Fatalf("Marshal 返回错误: %v", err)
			}
			if want, _ := proto.ID(tt.p.Type()); frame.ID != want {
				t.Errorf("id = %d, 期望 %d", frame.ID, want)
			}
			got, err := proto.Unmarshal(frame)
			if err != nil {
				t.Fatalf("Unmarshal 返回错误: %v", err)
			}
			if !reflect.DeepEqual(got, tt.p) {
				t.Errorf("往返得到 %+v, 期望 %+v", got, tt.p)
			}

			rec := &recorder{}
			got.Handle(rec)
			if rec.method != tt.method {
				t.Errorf("Handle 调用了 %s, 期望 %s", rec.method, tt.method)
			}
		})
	}
}

func TestProtocolIDsFollowDeclarationOrder(t *testing.T) {
	proto := Protocol(testSet(t))
	types := proto.Types()
	if len(types) != 15 {
		t.Fatalf("共 %d 个包, 期望 15", len(types))
	}
	for i, typ := range types {
		if typ.Flow != packet.Clientbound {
			t.Errorf("%s 不是 clientbound", typ)
		}
		if id, _ := proto.ID(typ); id != int32(i) {
			t.Errorf("ID(%s) = %d, 期望 %d", typ, id, i)
		}
	}
	if id, _ := proto.ID(TypeKeepAlive); id != 5 {
		t.Errorf("keep_alive id = %d, 期望 5", id)
	}
}

func TestProtocolErrors(t *testing.T) {
	set := testSet(t)
	proto := Protocol(set)

	t.Run("未知包 id", func(t *testing.T) {
		_, err := proto.Unmarshal(&protocol.Frame{ID: 99})
		if !errors.Is(err, protocol.ErrUnknownPacket) {
			t.Errorf("期望 ErrUnknownPacket, 实际: %v", err)
		}
	})

	t.Run("多余字节", func(t *testing.T) {
		frame, _ := proto.Marshal(KeepAlive{ID: 1})
		frame.Payload = append(frame.Payload, 0x00)
		_, err := proto.Unmarshal(frame)
		if !errors.Is(err, protocol.ErrTrailingBytes) {
			t.Errorf("期望 ErrTrailingBytes, 实际: %v", err)
		}
	})

	t.Run("registry 未命中", func(t *testing.T) {
		id, _ := proto.ID(TypeBlockUpdate)
		payload := make([]byte, 8)
		payload = append(payload, 0x09) // block id 9 is not in the snapshot
		_, err := proto.Unmarshal(&protocol.Frame{ID: id, Payload: payload})
		if protocol.KindOf(err) != protocol.KindRegistryMiss {
			t.Errorf("KindOf = %s, 期望 registry_miss (err=%v)", protocol.KindOf(err), err)
		}
		if got := protocol.Field(err); got != "block_update.block" {
			t.Errorf("Field() = %q, 期望 block_update.block", got)
		}
	})

	t.Run("光照数组超过上限", func(t *testing.T) {
		p := LightUpdate{SkyUpdates: [][]byte{make([]byte, LightSectionSize+1)}}
		if _, err := proto.Marshal(p); !errors.Is(err, protocol.ErrSizeLimit) {
			t.Errorf("期望 ErrSizeLimit, 实际: %v", err)
		}
	})

	t.Run("未注册的值", func(t *testing.T) {
		p := BlockUpdate{Block: registry.Block{Name: "minecraft:bedrock"}}
		if _, err := proto.Marshal(p); err == nil {
			t.Error("未注册的方块应无法编码")
		}
	})
}

func TestEncodeDecodeBytes(t *testing.T) {
	proto := Protocol(testSet(t))
	var buf bytes.Buffer
	if err := proto.Encode(&buf, SystemChat{Content: "hi"}); err != nil {
		t.Fatalf("Encode 返回错误: %v", err)
	}
	id, _ := proto.ID(TypeSystemChat)
	if buf.Bytes()[0] != byte(id) {
		t.Errorf("首字节 = %d, 期望 %d", buf.Bytes()[0], id)
	}
	p, err := proto.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode 返回错误: %v", err)
	}
	if chat, ok := p.(SystemChat); !ok || chat.Content != "hi" {
		t.Errorf("Decode = %#v", p)
	}
}
