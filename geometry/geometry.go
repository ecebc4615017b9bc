// Package geometry holds a small table of named disk-size presets so
// callers can open a block device by a familiar name ("floppy-1_44mb")
// instead of computing a block count by hand. The table is loaded once
// from an embedded CSV, the same way the reference disk-image stack's own
// geometry table is built.
package geometry

import (
	_ "embed"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/Rob-Reutiman/simple-FS/errors"
)

// Preset describes one named disk size.
type Preset struct {
	Slug        string `csv:"slug"`
	Name        string `csv:"name"`
	TotalBlocks uint   `csv:"total_blocks"`
	Notes       string `csv:"notes"`
}

//go:embed presets.csv
var presetsCSV string

var presetsBySlug map[string]Preset

func init() {
	presetsBySlug = make(map[string]Preset)

	err := gocsv.UnmarshalToCallback(
		strings.NewReader(presetsCSV),
		func(row Preset) error {
			presetsBySlug[row.Slug] = row
			return nil
		},
	)
	if err != nil {
		panic("geometry: malformed embedded presets.csv: " + err.Error())
	}
}

// Lookup returns the preset registered under slug, or ErrUnknownGeometry if
// no such preset exists.
func Lookup(slug string) (Preset, error) {
	preset, ok := presetsBySlug[slug]
	if !ok {
		return Preset{}, errors.ErrUnknownGeometry.WithMessage(slug)
	}
	return preset, nil
}

// Slugs returns every registered preset slug, for diagnostics and tests.
func Slugs() []string {
	slugs := make([]string, 0, len(presetsBySlug))
	for slug := range presetsBySlug {
		slugs = append(slugs, slug)
	}
	return slugs
}
