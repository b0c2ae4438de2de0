package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	p := New(0, 0)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, DefaultSize, p.Size)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, DefaultSize+1, p.FetchLimit())
}

func TestOffset_IsOneIndexed(t *testing.T) {
	assert.Equal(t, 40, New(3, 20).Offset())
	assert.Equal(t, 4, New(5, AdminSupportSize).Offset())
}

func TestMap_HasNext(t *testing.T) {
	p := New(1, 2)
	double := func(v int) int { return v * 2 }

	t.Run("extra row present", func(t *testing.T) {
		result := Map(p, []int{1, 2, 3}, double)
		assert.Equal(t, []int{2, 4}, result.Items)
		assert.True(t, result.HasNext)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("exactly one page", func(t *testing.T) {
		result := Map(p, []int{1, 2}, double)
		assert.Equal(t, []int{2, 4}, result.Items)
		assert.False(t, result.HasNext)
	})

	t.Run("empty page is not nil", func(t *testing.T) {
		result := Map(p, []int(nil), double)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.False(t, result.HasNext)
	})
}

func TestInRange(t *testing.T) {
	assert.True(t, New(3, 20).InRange())
	assert.True(t, New(MaxOffset/20+1, 20).InRange())
	assert.False(t, New(MaxOffset/20+2, 20).InRange())
	assert.False(t, New(math.MaxInt, 20).InRange())
}
