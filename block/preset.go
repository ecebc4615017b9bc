package block

import "github.com/Rob-Reutiman/simple-FS/geometry"

// OpenPreset resolves presetName through the geometry table and opens a
// Device of that many blocks at path, e.g. OpenPreset("disk.img",
// "floppy-1_44mb").
func OpenPreset(path string, presetName string) (*Device, error) {
	preset, err := geometry.Lookup(presetName)
	if err != nil {
		return nil, err
	}
	return Open(path, preset.TotalBlocks)
}
