package roomid

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomID_Format(t *testing.T) {
	g := New()
	id := g.NewRoomID()

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "room", parts[0])
	assert.Len(t, parts[1], 9)

	_, err := strconv.ParseInt(parts[2], 10, 64)
	assert.NoError(t, err)
}

func TestNewRoomID_Distinct(t *testing.T) {
	g := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.NewRoomID()
		assert.False(t, seen[id], "duplicate room id %s", id)
		seen[id] = true
	}
}
