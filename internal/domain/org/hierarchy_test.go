package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHierarchy() Hierarchy {
	return NewHierarchy(map[string][]string{
		"王經理": {"板橋", "中山"},
		"李經理": {"台中"},
	})
}

func TestNewHierarchy(t *testing.T) {
	t.Run("always carries the unassigned bucket", func(t *testing.T) {
		h := NewHierarchy(map[string][]string{})
		assert.Contains(t, h.Managers(), Unassigned)
		assert.Empty(t, h.Stores(Unassigned))
	})

	t.Run("copies the input mapping", func(t *testing.T) {
		src := map[string][]string{"王經理": {"板橋"}}
		h := NewHierarchy(src)
		src["王經理"][0] = "changed"
		assert.Equal(t, []string{"板橋"}, h.Stores("王經理"))
	})
}

func TestHierarchy_AllStores(t *testing.T) {
	refs := testHierarchy().AllStores()
	require.Len(t, refs, 3)

	seen := map[string]string{}
	for _, r := range refs {
		seen[r.ShortName] = r.Manager
	}
	assert.Equal(t, "王經理", seen["板橋"])
	assert.Equal(t, "王經理", seen["中山"])
	assert.Equal(t, "李經理", seen["台中"])
}

func TestHierarchy_Move(t *testing.T) {
	t.Run("reassigns atomically", func(t *testing.T) {
		h, err := testHierarchy().Move("板橋", "李經理")
		require.NoError(t, err)

		manager, ok := h.RegionOf("板橋")
		require.True(t, ok)
		assert.Equal(t, "李經理", manager)
		assert.NotContains(t, h.Stores("王經理"), "板橋")
	})

	t.Run("moving to unassigned always allowed", func(t *testing.T) {
		h, err := testHierarchy().Move("台中", Unassigned)
		require.NoError(t, err)
		assert.Contains(t, h.Stores(Unassigned), "台中")
	})

	t.Run("unknown destination rejected", func(t *testing.T) {
		_, err := testHierarchy().Move("板橋", "不存在")
		assert.Error(t, err)
	})

	t.Run("unknown store rejected", func(t *testing.T) {
		_, err := testHierarchy().Move("天母", "李經理")
		assert.Error(t, err)
	})

	t.Run("does not mutate the source hierarchy", func(t *testing.T) {
		h := testHierarchy()
		_, err := h.Move("板橋", "李經理")
		require.NoError(t, err)
		manager, _ := h.RegionOf("板橋")
		assert.Equal(t, "王經理", manager)
	})
}

func TestMatchesStore(t *testing.T) {
	t.Run("matches full prefixed name", func(t *testing.T) {
		assert.True(t, MatchesStore("CYJ板橋店", "CYJ", "板橋"))
	})

	t.Run("matches bare short name", func(t *testing.T) {
		assert.True(t, MatchesStore("板橋", "CYJ", "板橋"))
		assert.True(t, MatchesStore("板橋店", "CYJ", "板橋"))
	})

	t.Run("folds width variants", func(t *testing.T) {
		assert.True(t, MatchesStore("ＣＹＪ板橋店", "CYJ", "板橋"))
	})

	t.Run("rejects other stores and empty names", func(t *testing.T) {
		assert.False(t, MatchesStore("CYJ中山店", "CYJ", "板橋"))
		assert.False(t, MatchesStore("", "CYJ", "板橋"))
	})
}

func TestFullStoreName(t *testing.T) {
	assert.Equal(t, "CYJ板橋店", FullStoreName("CYJ", "板橋"))
}
