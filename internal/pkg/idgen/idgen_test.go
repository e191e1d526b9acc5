package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("ent")
	assert.Equal(t, "ent_1", gen.Generate())
	assert.Equal(t, "ent_2", gen.Generate())

	gen.Reset()
	assert.Equal(t, "ent_1", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("sess")
	a, b := gen.Generate(), gen.Generate()
	assert.True(t, strings.HasPrefix(a, "sess_"))
	assert.NotEqual(t, a, b)
}
