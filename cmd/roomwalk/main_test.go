package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/models"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// execute runs the root command with args and returns its output. Flag
// globals are reset first since cobra keeps values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, watch = "", false
	materialsClass = ""
	exportFloor, exportWall = "", ""
	snapshotWidth, snapshotHeight, snapshotAim = 320, 180, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMaterials(t *testing.T) {
	out, err := execute(t, "materials")
	require.NoError(t, err)

	assert.Contains(t, out, "Floor\n")
	assert.Contains(t, out, "* hardwood")
	assert.Contains(t, out, "  carpet")
	assert.Contains(t, out, "* whitePaint")
	assert.Contains(t, out, "Ceiling (fixed)")
}

func TestMaterialsClass(t *testing.T) {
	out, err := execute(t, "materials", "--class", "wall")
	require.NoError(t, err)
	assert.Contains(t, out, "brick")
	assert.NotContains(t, out, "hardwood")

	_, err = execute(t, "materials", "--class", "door")
	assert.Error(t, err)
}

func TestMaterialsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomwalk.yaml")
	cfg := `
materials:
  classes:
    - class: floor
      materials: [marble, concrete]
      default: concrete
    - class: wall
      materials: [cream]
      default: cream
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	out, err := execute(t, "--config", path, "materials", "--class", "floor")
	require.NoError(t, err)
	assert.Contains(t, out, "* concrete")
	assert.Contains(t, out, "  marble")
	assert.NotContains(t, out, "hardwood")
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.glb")
	out, err := execute(t, "export", path, "--floor", "tile")
	require.NoError(t, err)
	assert.Contains(t, out, "floor tile, wall whitePaint")

	meshes, err := models.LoadGLB(path)
	require.NoError(t, err)

	classes := map[string]surface.Class{}
	materials := map[string]string{}
	for _, m := range meshes {
		classes[m.Name] = m.Class
		require.NotEmpty(t, m.Materials, m.Name)
		materials[m.Name] = m.Materials[0].Name
	}
	assert.Equal(t, surface.Floor, classes["floor"])
	assert.Equal(t, "tile", materials["floor"])
	assert.Equal(t, "whitePaint", materials["wall-south"])
}

func TestExportRejectsMaterial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.glb")
	_, err := execute(t, "export", path, "--wall", "tile")
	require.ErrorIs(t, err, catalog.ErrUnknownMaterial)
	assert.NoFileExists(t, path)
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.png")
	out, err := execute(t, "snapshot", path, "--width", "64", "--height", "36", "--aim")
	require.NoError(t, err)
	assert.Contains(t, out, "64x36")
	assert.Contains(t, out, "wall-south")
	assert.FileExists(t, path)
}

func TestWatchNeedsConfig(t *testing.T) {
	_, err := execute(t, "--watch")
	assert.EqualError(t, err, "--watch needs --config")
}
