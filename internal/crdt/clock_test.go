package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		clock     Clock
		want      Clock
		name      string
		replicaID string
	}{
		{
			name:      "increment nil clock",
			clock:     nil,
			replicaID: "A",
			want:      Clock{"A": 1},
		},
		{
			name:      "increment existing component",
			clock:     Clock{"A": 2, "B": 1},
			replicaID: "A",
			want:      Clock{"A": 3, "B": 1},
		},
		{
			name:      "increment new component",
			clock:     Clock{"A": 2},
			replicaID: "B",
			want:      Clock{"A": 2, "B": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Increment(tt.clock, tt.replicaID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIncrement_DoesNotMutateInput(t *testing.T) {
	original := Clock{"A": 1}

	incremented := Increment(original, "A")

	assert.Equal(t, int64(1), original["A"])
	assert.Equal(t, int64(2), incremented["A"])
}

func TestIncrement_Monotonic(t *testing.T) {
	// Счетчик собственной реплики только растет
	clock := Clock{}
	for i := int64(1); i <= 10; i++ {
		clock = Increment(clock, "A")
		assert.Equal(t, i, clock["A"])
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		a    Clock
		b    Clock
		want Clock
		name string
	}{
		{
			name: "componentwise max over key union",
			a:    Clock{"A": 3, "B": 1},
			b:    Clock{"B": 2, "C": 5},
			want: Clock{"A": 3, "B": 2, "C": 5},
		},
		{
			name: "merge with empty clock",
			a:    Clock{"A": 1},
			b:    Clock{},
			want: Clock{"A": 1},
		},
		{
			name: "merge two nil clocks",
			a:    nil,
			b:    nil,
			want: Clock{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_SemilatticeLaws(t *testing.T) {
	a := Clock{"A": 3, "B": 1}
	b := Clock{"B": 2, "C": 5}
	c := Clock{"A": 1, "C": 7}

	// Коммутативность
	assert.Equal(t, Merge(a, b), Merge(b, a))

	// Ассоциативность
	assert.Equal(t, Merge(Merge(a, b), c), Merge(a, Merge(b, c)))

	// Идемпотентность
	assert.Equal(t, a, Merge(a, a))

	// Результат доминирует оба входа
	merged := Merge(a, b)
	assert.NotEqual(t, Before, Compare(merged, a))
	assert.NotEqual(t, Before, Compare(merged, b))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := Clock{"A": 1}
	b := Clock{"A": 5, "B": 2}

	_ = Merge(a, b)

	assert.Equal(t, Clock{"A": 1}, a)
	assert.Equal(t, Clock{"A": 5, "B": 2}, b)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a    Clock
		b    Clock
		name string
		want Ordering
	}{
		{
			name: "equal clocks",
			a:    Clock{"A": 1, "B": 2},
			b:    Clock{"A": 1, "B": 2},
			want: Equal,
		},
		{
			name: "both empty",
			a:    Clock{},
			b:    Clock{},
			want: Equal,
		},
		{
			name: "nil equals empty",
			a:    nil,
			b:    Clock{},
			want: Equal,
		},
		{
			name: "zero component equivalent to absent",
			a:    Clock{"A": 1, "B": 0},
			b:    Clock{"A": 1},
			want: Equal,
		},
		{
			name: "strictly before",
			a:    Clock{"A": 1},
			b:    Clock{"A": 2},
			want: Before,
		},
		{
			name: "before via extra component",
			a:    Clock{"A": 1},
			b:    Clock{"A": 1, "B": 1},
			want: Before,
		},
		{
			name: "strictly after",
			a:    Clock{"A": 2, "B": 1},
			b:    Clock{"A": 1, "B": 1},
			want: After,
		},
		{
			name: "after via extra component",
			a:    Clock{"A": 1, "B": 1},
			b:    Clock{"B": 1},
			want: After,
		},
		{
			name: "concurrent",
			a:    Clock{"A": 2, "B": 1},
			b:    Clock{"A": 1, "B": 2},
			want: Concurrent,
		},
		{
			name: "concurrent with disjoint keys",
			a:    Clock{"A": 1},
			b:    Clock{"B": 1},
			want: Concurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	// Before/After меняются местами при перестановке аргументов,
	// Equal и Concurrent симметричны
	pairs := []struct {
		a Clock
		b Clock
	}{
		{Clock{"A": 1}, Clock{"A": 2}},
		{Clock{"A": 2, "B": 1}, Clock{"A": 1, "B": 2}},
		{Clock{"A": 1}, Clock{"A": 1}},
		{Clock{"A": 1}, Clock{"B": 1}},
	}

	for _, p := range pairs {
		forward := Compare(p.a, p.b)
		backward := Compare(p.b, p.a)

		switch forward {
		case Before:
			assert.Equal(t, After, backward)
		case After:
			assert.Equal(t, Before, backward)
		default:
			assert.Equal(t, forward, backward)
		}
	}
}

func TestClone(t *testing.T) {
	original := Clock{"A": 1, "B": 2}

	cloned := original.Clone()
	require.Equal(t, original, cloned)

	// Изменение копии не затрагивает оригинал
	cloned["A"] = 99
	assert.Equal(t, int64(1), original["A"])
}

func TestClone_Nil(t *testing.T) {
	var c Clock

	cloned := c.Clone()
	require.NotNil(t, cloned)
	assert.Empty(t, cloned)
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "before", Before.String())
	assert.Equal(t, "after", After.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "concurrent", Concurrent.String())
	assert.Equal(t, "unknown", Ordering(42).String())
}
