package block_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rob-Reutiman/simple-FS/block"
)

func TestOpenPresetResolvesNamedGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floppy.img")

	device, err := block.OpenPreset(path, "floppy-1_44mb")
	require.NoError(t, err)
	defer device.Close()

	assert.EqualValues(t, 360, device.Count())
}

func TestOpenPresetRejectsUnknownName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	_, err := block.OpenPreset(path, "does-not-exist")
	assert.Error(t, err)
}
