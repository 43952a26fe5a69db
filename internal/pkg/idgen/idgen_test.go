package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUID("map")

	a, b := gen.Generate(), gen.Generate()
	assert.True(t, strings.HasPrefix(a, "map_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, strings.TrimPrefix(a, "map_"), 36)

	assert.Len(t, NewUUID("").Generate(), 36)
}

func TestSequentialGenerator(t *testing.T) {
	gen := NewSequential("map")
	assert.Equal(t, "map_1", gen.Generate())
	assert.Equal(t, "map_2", gen.Generate())

	bare := NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}
