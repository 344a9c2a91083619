package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/types"
)

func TestParseRecipe(t *testing.T) {
	r, err := parseRecipe([]byte(cubeRecipe))
	require.NoError(t, err)
	assert.Equal(t, "cube", r.Name)
	assert.Equal(t, "box", r.Model.Kind)
	require.NotNil(t, r.Model.Size)
	assert.Equal(t, vec3{1, 1, 1}, *r.Model.Size)
	require.NotNil(t, r.Mesh)
	assert.Equal(t, 2, r.Mesh.Dimension)
	require.NotNil(t, r.Mesh.EdgeSize)
	assert.InDelta(t, 0.5, *r.Mesh.EdgeSize, 0)
}

func TestParseRecipe_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "model:\n  kind: box\n  colour: red\n", "colour"},
		{"short vector", "model:\n  kind: box\n  size: [1, 2]\n", "expected 3 coordinates"},
		{"no kind", "name: x\n", "no model kind"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseRecipe([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRecipeBuild(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		kind   types.Kind
		volume float64
	}{
		{
			name:   "box",
			yaml:   "model:\n  kind: box\n  size: [2, 3, 4]\n  origin: [1, 1, 1]\n",
			kind:   types.KindSolid,
			volume: 24,
		},
		{
			name:   "cylinder along x",
			yaml:   "model:\n  kind: cylinder\n  radius: 1\n  height: 2\n  axis: [1, 0, 0]\n",
			kind:   types.KindSolid,
			volume: 2 * math.Pi,
		},
		{
			name:   "prism",
			yaml:   "model:\n  kind: prism\n  polygon: [[0, 0, 0], [2, 0, 0], [0, 2, 0]]\n  vector: [0, 0, 3]\n",
			kind:   types.KindSolid,
			volume: 6,
		},
		{
			name: "ruled loft",
			yaml: `model:
  kind: loft
  ruled: true
  sections:
    - [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
    - [[0, 0, 1], [1, 0, 1], [1, 1, 1], [0, 1, 1]]
`,
			kind:   types.KindSolid,
			volume: 1,
		},
		{
			name: "loft shell",
			yaml: `model:
  kind: loft
  shell: true
  sections:
    - [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
    - [[0, 0, 1], [1, 0, 1], [1, 1, 1], [0, 1, 1]]
`,
			kind: types.KindShell,
		},
		{
			name: "operations",
			yaml: `model:
  kind: box
  size: [1, 1, 1]
operations:
  - translate: [5, 0, 0]
  - rotate: {origin: [0, 0, 0], axis: [0, 0, 1], angle: 90}
  - mirror: {origin: [0, 0, 0], normal: [1, 0, 0]}
  - copy: true
  - unite: {kind: box, size: [1, 1, 1], origin: [-10, -10, -10]}
`,
			kind:   types.KindCompound,
			volume: 2,
		},
		{
			name: "disjoint cut",
			yaml: `model:
  kind: box
  size: [1, 1, 1]
operations:
  - cut: {kind: box, size: [1, 1, 1], origin: [3, 0, 0]}
`,
			kind:   types.KindSolid,
			volume: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := parseRecipe([]byte(tc.yaml))
			require.NoError(t, err)
			s, err := r.build()
			require.NoError(t, err)
			assert.Equal(t, tc.kind, s.Kind())
			if tc.volume > 0 {
				v, err := s.Volume()
				require.NoError(t, err)
				assert.InEpsilon(t, tc.volume, v, 1e-3)
			}
		})
	}
}

func TestRecipeBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown kind", "model:\n  kind: sphere\n", `unknown model kind "sphere"`},
		{"box without size", "model:\n  kind: box\n", "needs a size"},
		{"prism without vector", "model:\n  kind: prism\n  polygon: [[0,0,0],[1,0,0],[0,1,0]]\n", "extrusion vector"},
		{"short polygon", "model:\n  kind: prism\n  polygon: [[0,0,0],[1,0,0]]\n  vector: [0,0,1]\n", "at least 3 points"},
		{"empty operation", "model:\n  kind: box\n  size: [1,1,1]\noperations:\n  - {}\n", "operation 1: empty operation"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := parseRecipe([]byte(tc.yaml))
			require.NoError(t, err)
			_, err = r.build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestMeshControlOverrides(t *testing.T) {
	r, err := parseRecipe([]byte(cubeRecipe))
	require.NoError(t, err)
	s, err := r.build()
	require.NoError(t, err)

	c := r.meshControl(s, 0, 0, false)
	assert.Equal(t, 2, c.Dimension)
	require.NotNil(t, c.EdgeSize)
	assert.InDelta(t, 0.5, *c.EdgeSize, 0)
	assert.False(t, c.AllowQuads)

	c = r.meshControl(s, 3, 0.25, true)
	assert.Equal(t, 3, c.Dimension)
	assert.InDelta(t, 0.25, *c.EdgeSize, 0)
	assert.True(t, c.AllowQuads)
}
