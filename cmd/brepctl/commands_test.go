package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/types"
)

func TestRunInfo(t *testing.T) {
	resetFlags(t)
	path := writeRecipe(t, cubeRecipe)

	out, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Kind: Solid")
	assert.Contains(t, out, "Edge")
	assert.Contains(t, out, "Volume: 1")
}

func TestRunInfo_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	path := writeRecipe(t, cubeRecipe)

	out, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)

	var info modelInfo
	decodeJSON(t, out, &info)
	assert.Equal(t, "cube", info.Name)
	assert.Equal(t, "Solid", info.Kind)
	assert.InDelta(t, 1, info.Volume, 1e-9)
	assert.InDelta(t, 6, info.Area, 1e-9)

	counts := map[string]kindCount{}
	for _, c := range info.Counts {
		counts[c.Kind] = c
	}
	assert.Equal(t, kindCount{Kind: "Edge", Size: 12, Extent: 24}, counts["Edge"])
	assert.Equal(t, 8, counts["Vertex"].Size)
	assert.Equal(t, 6, counts["Face"].Size)
	assert.NotContains(t, counts, "Compound")
}

func TestRunBuild(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	buildStepOut = filepath.Join(dir, "cube.step")
	buildUnvOut = filepath.Join(dir, "cube.unv")
	path := writeRecipe(t, cubeRecipe)

	out, err := captureOutput(t, func() error { return runBuild([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+buildStepOut)
	assert.Contains(t, out, "(24 nodes)")

	step, err := os.ReadFile(buildStepOut)
	require.NoError(t, err)
	assert.Contains(t, string(step), "('Test Author')")
	unv, err := os.ReadFile(buildUnvOut)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(unv), "    -1\n  2411\n"))
}

func TestRunBuild_NothingToDo(t *testing.T) {
	resetFlags(t)
	err := runBuild([]string{writeRecipe(t, cubeRecipe)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to do")
}

func TestRunBuild_UnwritableStep(t *testing.T) {
	resetFlags(t)
	buildStepOut = filepath.Join(t.TempDir(), "missing", "cube.step")
	err := runBuild([]string{writeRecipe(t, cubeRecipe)})
	require.ErrorIs(t, err, types.ErrExport)
}

func TestRunMesh(t *testing.T) {
	resetFlags(t)
	meshUnvOut = filepath.Join(t.TempDir(), "cube.unv")
	meshDim = 3
	jsonOut = true
	path := writeRecipe(t, cubeRecipe)

	out, err := captureOutput(t, func() error { return runMesh([]string{path}) })
	require.NoError(t, err)

	var st types.MeshStats
	decodeJSON(t, out, &st)
	assert.Equal(t, types.MeshStats{Nodes: 25, Edges: 24, Faces: 44, Triangles: 44, Tetras: 44}, st)
	_, err = os.Stat(meshUnvOut)
	require.NoError(t, err)
}

func TestRunMesh_InvalidDimension(t *testing.T) {
	resetFlags(t)
	meshUnvOut = filepath.Join(t.TempDir(), "cube.unv")
	meshDim = 5
	err := runMesh([]string{writeRecipe(t, cubeRecipe)})
	require.ErrorIs(t, err, types.ErrMeshControl)
}

func TestRunInfo_MissingRecipe(t *testing.T) {
	resetFlags(t)
	err := runInfo([]string{filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read recipe")
}

func TestSetupLogging_LogFile(t *testing.T) {
	resetFlags(t)
	logFile = filepath.Join(t.TempDir(), "brepctl.log")
	verbose = true
	require.NoError(t, setupLogging(rootCmd, nil))
	t.Cleanup(func() {
		rootCmd.PersistentPostRun(rootCmd, nil)
		verbose, logFile = false, ""
		require.NoError(t, setupLogging(rootCmd, nil))
	})

	meshUnvOut = filepath.Join(t.TempDir(), "cube.unv")
	_, err := captureOutput(t, func() error { return runMesh([]string{writeRecipe(t, cubeRecipe)}) })
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"mesh computed"`)
}
