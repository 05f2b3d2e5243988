package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gowire/pkg/config"
	"github.com/philipparndt/gowire/pkg/viewer"
)

const triangleScene = `
colorings:
  red: {normal: "#ff0000"}
points:
  a: [0, 0, 0]
  b: [4, 0, 0]
  c: [0, 4, 0]
edges:
  ab: {head: a, tail: b}
  bc: {head: b, tail: c}
  ca: {head: c, tail: a}
faces:
  abc: {edges: [ab, bc, ca], coloring: red}
meshes:
  - name: tri
    points: [a, b, c]
    faces: [abc]
`

func TestOpenBuiltInCube(t *testing.T) {
	flags := Flags{Fit: true}
	s, err := flags.Open("")
	require.NoError(t, err)

	assert.Equal(t, "cube", s.Scene.Name)
	assert.Len(t, s.Viewer.Meshes(), 6)
	// the cube is centered on the origin
	assert.Equal(t, s.Viewer.Camera.Defaults(), s.Viewer.Camera.Settings())
	assert.Zero(t, s.Viewer.Camera.WorldCenter())
}

func TestOpenWithConfigAndReload(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gowire.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[render]\nwidth = 200\nheight = 100\n[log]\nlevel = \"error\"\n"), 0o644))
	scenePath := filepath.Join(dir, "tri.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(triangleScene), 0o644))

	flags := Flags{ConfigPath: configPath, Fit: true}
	s, err := flags.Open(scenePath)
	require.NoError(t, err)
	assert.Equal(t, 200, s.Config.Render.Width)
	require.Len(t, s.Scene.Meshes, 1)
	first := s.Scene.Meshes[0]

	center := s.Viewer.Camera.WorldCenter()
	assert.InDelta(t, 2.0, center.X, 1e-9)
	assert.InDelta(t, 2.0, center.Y, 1e-9)

	require.NoError(t, s.Reload())
	require.Len(t, s.Viewer.Meshes(), 1)
	assert.NotSame(t, first, s.Viewer.Meshes()[0])
}

func TestOpenErrors(t *testing.T) {
	flags := Flags{}
	_, err := flags.Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[render]\nwidth = -1\n"), 0o644))
	flags = Flags{ConfigPath: bad}
	_, err = flags.Open("")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestDescribeUsesSceneNames(t *testing.T) {
	flags := Flags{Fit: true}
	s, err := flags.Open("")
	require.NoError(t, err)

	face := s.Scene.Meshes[0].Faces()[0]
	target := viewer.Target{Mesh: s.Scene.Meshes[0], Kind: viewer.KindFace, Face: face}
	assert.Equal(t, "side0 face f0", s.Describe(target))
}
