package kit

import (
	"fmt"
	"strconv"

	"delugekit/internal/kiterr"
	"delugekit/internal/regions"
	"delugekit/internal/textutil"
)

// Mapper converts regions into rows.
type Mapper struct {
	// MaxNameLength caps row names, suffix included. Zero leaves them
	// uncapped.
	MaxNameLength int
	Mode          PlaybackMode
}

// Map builds the row for region r of src and registers its name in reg.
// A name already present in reg gets the first free numeric suffix starting
// at 2.
func (m Mapper) Map(reg *Registry, src Source, r regions.Region) (Row, error) {
	if r.Start >= r.End {
		return Row{}, kiterr.Wrap(kiterr.ErrCorruptMetadata, src.File.Path, "map region",
			fmt.Sprintf("region %q has empty range %d-%d", r.Name, r.Start, r.End), nil)
	}

	base := textutil.Truncate(r.Name, m.MaxNameLength)
	if base == "" {
		base = regions.StemName(src.File, m.MaxNameLength)
	}

	name := base
	for n := 2; !reg.Register(name); n++ {
		name = textutil.WithSuffix(base, strconv.Itoa(n), m.MaxNameLength)
	}

	return Row{
		Name:       name,
		Source:     src.File,
		SamplePath: src.SamplePath,
		Start:      r.Start,
		End:        r.End,
		Mode:       m.Mode,
	}, nil
}
