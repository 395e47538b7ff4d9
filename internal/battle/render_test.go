package battle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAnnotatesUnitsPerRow(t *testing.T) {
	s := mustSim(t, []string{
		"#######",
		"#.G...#",
		"#...EG#",
		"#######",
	})

	lines := strings.Split(strings.TrimRight(s.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "#######", lines[0])
	assert.Equal(t, "#.G...#   G(200)", lines[1])
	assert.Equal(t, "#...EG#   E(200), G(200)", lines[2])
	assert.Equal(t, "#######", lines[3])
}
