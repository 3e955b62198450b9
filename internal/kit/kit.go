package kit

import "delugekit/internal/regions"

// Source is a source file as seen from the kit being built: SamplePath is
// how the kit refers to the sample.
type Source struct {
	File       regions.SourceFile
	SamplePath string
}

// Row is one playable slot of a kit.
type Row struct {
	Name       string
	Source     regions.SourceFile
	SamplePath string
	Start      uint64
	End        uint64
	Mode       PlaybackMode
}

// Kit is an ordered set of rows bound for one output file. Row order is pad
// order on the device.
type Kit struct {
	Name string
	Path string
	Rows []Row
}

// Sources returns the distinct source paths of the kit's rows in first-use
// order.
func (k *Kit) Sources() []string {
	seen := make(map[string]struct{}, len(k.Rows))
	var out []string
	for _, row := range k.Rows {
		if _, ok := seen[row.Source.Path]; ok {
			continue
		}
		seen[row.Source.Path] = struct{}{}
		out = append(out, row.Source.Path)
	}
	return out
}
