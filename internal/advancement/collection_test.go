package advancement

import (
	"testing"

	"github.com/Versifine/mcwire/internal/bounds"
)

func eq(n int) PredicateFunc[int] {
	return func(v int) bool { return v == n }
}

func even() PredicateFunc[int] {
	return func(v int) bool { return v%2 == 0 }
}

func TestCollectionContents(t *testing.T) {
	tests := []struct {
		name  string
		preds CollectionContents[int, PredicateFunc[int]]
		items []int
		want  bool
	}{
		{"无谓词匹配空集合", nil, nil, true},
		{"无谓词匹配任意集合", nil, []int{1, 2}, true},
		{"单谓词存在匹配", CollectionContents[int, PredicateFunc[int]]{eq(2)}, []int{1, 2, 3}, true},
		{"单谓词无匹配", CollectionContents[int, PredicateFunc[int]]{eq(9)}, []int{1, 2, 3}, false},
		{"单谓词空集合", CollectionContents[int, PredicateFunc[int]]{eq(1)}, nil, false},
		{"多谓词不相交元素", CollectionContents[int, PredicateFunc[int]]{eq(1), eq(3)}, []int{3, 2, 1}, true},
		{"多谓词共享同一元素", CollectionContents[int, PredicateFunc[int]]{eq(2), even()}, []int{1, 2}, true},
		{"多谓词部分满足", CollectionContents[int, PredicateFunc[int]]{eq(1), eq(4)}, []int{1, 2, 3}, false},
		{"多谓词空集合", CollectionContents[int, PredicateFunc[int]]{eq(1), eq(2)}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.preds.Matches(tt.items); got != tt.want {
				t.Errorf("Matches(%v) = %v, 期望 %v", tt.items, got, tt.want)
			}
		})
	}
}

func TestCollectionCounts(t *testing.T) {
	items := []int{1, 2, 3, 4, 6} // 3 even
	between := func(min, max int64) bounds.Ints {
		b, err := bounds.Between(min, max)
		if err != nil {
			t.Fatalf("Between(%d, %d) 返回错误: %v", min, max, err)
		}
		return b
	}

	tests := []struct {
		name  string
		count bounds.Ints
		want  bool
	}{
		{"计数在 [2,3] 内", between(2, 3), true},
		{"计数不在 [4,5] 内", between(4, 5), false},
		{"恰好 3", bounds.Exactly[int64](3), true},
		{"无界", bounds.Any[int64](), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CountEntry[int, PredicateFunc[int]]{Test: even(), Count: tt.count}
			if got := e.Matches(items); got != tt.want {
				t.Errorf("Entry.Matches() = %v, 期望 %v", got, tt.want)
			}
		})
	}

	all := CollectionCounts[int, PredicateFunc[int]]{
		{Test: even(), Count: between(2, 3)},
		{Test: eq(1), Count: bounds.Exactly[int64](1)},
	}
	if !all.Matches(items) {
		t.Error("所有条目都满足时应该匹配")
	}
	all = append(all, CountEntry[int, PredicateFunc[int]]{Test: eq(5), Count: bounds.AtLeast[int64](1)})
	if all.Matches(items) {
		t.Error("有一个条目不满足时不应匹配")
	}
	if !(CollectionCounts[int, PredicateFunc[int]]{}).Matches(nil) {
		t.Error("空条目列表应该匹配")
	}
}

func TestCollectionPredicate(t *testing.T) {
	var nilPred *CollectionPredicate[int, PredicateFunc[int]]
	if !nilPred.Matches(nil) {
		t.Error("nil 谓词应该匹配")
	}
	p := &CollectionPredicate[int, PredicateFunc[int]]{
		Contains: CollectionContents[int, PredicateFunc[int]]{eq(2)},
		Size:     bounds.AtMost[int64](3),
	}
	if !p.Matches([]int{1, 2}) {
		t.Error("[1 2] 应该匹配")
	}
	if p.Matches([]int{1, 2, 3, 4}) {
		t.Error("超过大小上限不应匹配")
	}
}
