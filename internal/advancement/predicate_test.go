package advancement

import (
	"testing"

	"github.com/Versifine/mcwire/internal/bounds"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

func stack(name string, count int32) registry.ItemStack {
	return registry.ItemStack{Item: registry.Item{Name: name}, Count: count}
}

func boolPtr(b bool) *bool { return &b }

// TestNilPredicatesMatch 缺失的谓词是通配符
func TestNilPredicatesMatch(t *testing.T) {
	var (
		item     *ItemPredicate
		block    *BlockPredicate
		location *LocationPredicate
		distance *DistancePredicate
		entity   *EntityPredicate
		ctx      *ContextAwarePredicate
	)
	if !item.Matches(registry.ItemStack{}) {
		t.Error("nil ItemPredicate 应该匹配")
	}
	if !block.Matches(registry.BlockState{}) {
		t.Error("nil BlockPredicate 应该匹配")
	}
	if !location.Matches(Location{}) {
		t.Error("nil LocationPredicate 应该匹配")
	}
	if !distance.Matches(protocol.Vec3{}, protocol.Vec3{X: 1e9}) {
		t.Error("nil DistancePredicate 应该匹配")
	}
	if !entity.Matches(nil, nil) {
		t.Error("nil EntityPredicate 应该匹配缺失的实体")
	}
	if !ctx.Matches(nil) {
		t.Error("nil ContextAwarePredicate 应该匹配")
	}
	if !(&ItemPredicate{}).Matches(stack("minecraft:stone", 1)) {
		t.Error("空 ItemPredicate 应该匹配")
	}
	if !(&ContextAwarePredicate{}).Matches(&LootContext{}) {
		t.Error("空条件列表应该匹配")
	}
}

func TestItemPredicate(t *testing.T) {
	p := &ItemPredicate{
		Items: []string{"minecraft:diamond", "minecraft:emerald"},
		Count: bounds.AtLeast[int64](2),
	}
	tests := []struct {
		name  string
		stack registry.ItemStack
		want  bool
	}{
		{"名称和数量都满足", stack("minecraft:diamond", 3), true},
		{"第二个名称", stack("minecraft:emerald", 2), true},
		{"数量不足", stack("minecraft:diamond", 1), false},
		{"名称不符", stack("minecraft:stone", 64), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Matches(tt.stack); got != tt.want {
				t.Errorf("Matches(%+v) = %v, 期望 %v", tt.stack, got, tt.want)
			}
		})
	}
}

func TestBlockPredicate(t *testing.T) {
	p := &BlockPredicate{
		Blocks: []string{"minecraft:oak_door"},
		State:  map[string]string{"open": "true"},
	}
	open := registry.BlockState{Block: registry.Block{Name: "minecraft:oak_door"}, Properties: map[string]string{"open": "true", "half": "lower"}}
	closed := registry.BlockState{Block: registry.Block{Name: "minecraft:oak_door"}, Properties: map[string]string{"open": "false"}}
	other := registry.BlockState{Block: registry.Block{Name: "minecraft:stone"}}

	if !p.Matches(open) {
		t.Error("打开的门应该匹配")
	}
	if p.Matches(closed) {
		t.Error("关闭的门不应匹配")
	}
	if p.Matches(other) {
		t.Error("其他方块不应匹配")
	}
}

func TestLocationPredicate(t *testing.T) {
	y, err := bounds.Between(-64.0, 0.0)
	if err != nil {
		t.Fatalf("Between() 返回错误: %v", err)
	}
	p := &LocationPredicate{
		Position:  PositionPredicate{Y: y},
		Dimension: "minecraft:overworld",
		Block:     &BlockPredicate{Blocks: []string{"minecraft:water"}},
	}
	water := registry.BlockState{Block: registry.Block{Name: "minecraft:water"}}
	tests := []struct {
		name string
		loc  Location
		want bool
	}{
		{"全部满足", Location{Dimension: "minecraft:overworld", Pos: protocol.Vec3{Y: -10}, Block: water}, true},
		{"高度不符", Location{Dimension: "minecraft:overworld", Pos: protocol.Vec3{Y: 10}, Block: water}, false},
		{"维度不符", Location{Dimension: "minecraft:the_nether", Pos: protocol.Vec3{Y: -10}, Block: water}, false},
		{"方块不符", Location{Dimension: "minecraft:overworld", Pos: protocol.Vec3{Y: -10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Matches(tt.loc); got != tt.want {
				t.Errorf("Matches() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

func TestDistancePredicate(t *testing.T) {
	horizontal, _ := bounds.Between(0.0, 5.0)
	p := &DistancePredicate{Horizontal: horizontal, Y: bounds.AtMost(2.0)}
	origin := protocol.Vec3{X: 10, Y: 64, Z: 10}

	tests := []struct {
		name string
		to   protocol.Vec3
		want bool
	}{
		{"水平距离 5 在边界上", protocol.Vec3{X: 13, Y: 64, Z: 14}, true},
		{"水平距离超出", protocol.Vec3{X: 14, Y: 64, Z: 14}, false},
		{"垂直距离超出", protocol.Vec3{X: 10, Y: 61, Z: 10}, false},
		{"负方向", protocol.Vec3{X: 7, Y: 65, Z: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Matches(origin, tt.to); got != tt.want {
				t.Errorf("Matches(%v) = %v, 期望 %v", tt.to, got, tt.want)
			}
		})
	}

	abs := &DistancePredicate{Absolute: bounds.AtLeast(3.0)}
	if abs.Matches(protocol.Vec3{}, protocol.Vec3{X: 1, Y: 2, Z: 2}.Sub(protocol.Vec3{X: 0, Y: 0, Z: 0.01})) {
		t.Error("绝对距离小于 3 不应匹配")
	}
	if !abs.Matches(protocol.Vec3{}, protocol.Vec3{X: 1, Y: 2, Z: 2}) {
		t.Error("绝对距离等于 3 应该匹配")
	}
}

func TestEntityPredicate(t *testing.T) {
	player := &Entity{
		Type:      "minecraft:player",
		Dimension: "minecraft:overworld",
		Pos:       protocol.Vec3{X: 1, Y: 64, Z: 1},
		OnGround:  true,
		Mainhand:  stack("minecraft:diamond_sword", 1),
	}
	origin := protocol.Vec3{X: 0, Y: 64, Z: 0}
	near := &DistancePredicate{Absolute: bounds.AtMost(2.0)}

	tests := []struct {
		name   string
		pred   *EntityPredicate
		origin *protocol.Vec3
		entity *Entity
		want   bool
	}{
		{"类型匹配", &EntityPredicate{Type: "minecraft:player"}, nil, player, true},
		{"类型不符", &EntityPredicate{Type: "minecraft:zombie"}, nil, player, false},
		{"缺失实体", &EntityPredicate{}, nil, nil, false},
		{"距离满足", &EntityPredicate{Distance: near}, &origin, player, true},
		{"距离需要原点", &EntityPredicate{Distance: near}, nil, player, false},
		{"标志满足", &EntityPredicate{Flags: &EntityFlags{IsOnGround: boolPtr(true), IsSneaking: boolPtr(false)}}, nil, player, true},
		{"标志不符", &EntityPredicate{Flags: &EntityFlags{IsSneaking: boolPtr(true)}}, nil, player, false},
		{"主手物品", &EntityPredicate{Mainhand: &ItemPredicate{Items: []string{"minecraft:diamond_sword"}}}, nil, player, true},
		{"位置维度", &EntityPredicate{Location: &LocationPredicate{Dimension: "minecraft:the_end"}}, nil, player, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Matches(tt.origin, tt.entity); got != tt.want {
				t.Errorf("Matches() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}
