package deluge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"delugekit/internal/kiterr"
)

var (
	kitExpr     = xpath.MustCompile("/kit")
	soundExpr   = xpath.MustCompile("/kit/soundSources/sound")
	osc1Expr    = xpath.MustCompile("osc1")
	zoneExpr    = xpath.MustCompile("osc1/zone")
	drumIdxExpr = xpath.MustCompile("/kit/selectedDrumIndex")
)

// RowSummary is one sound row of a kit file.
type RowSummary struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Start    uint64 `json:"start"`
	End      uint64 `json:"end"`
	LoopMode int    `json:"loop_mode"`
}

// KitSummary is what inspect reports about a kit file.
type KitSummary struct {
	Path              string       `json:"path"`
	FirmwareVersion   string       `json:"firmware_version"`
	SelectedDrumIndex int          `json:"selected_drum_index"`
	Rows              []RowSummary `json:"rows"`
}

// ReadKit parses the kit file at path.
func ReadKit(path string) (*KitSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kiterr.Wrap(nil, path, "read kit", "", err)
	}
	summary, err := ParseKit(bytes.NewReader(data))
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrUnsupportedFormat, path, "parse kit", "", err)
	}
	summary.Path = path
	return summary, nil
}

// ParseKit parses kit XML from r. Rows are returned in document order.
func ParseKit(r io.Reader) (*KitSummary, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	root := xmlquery.QuerySelector(doc, kitExpr)
	if root == nil {
		return nil, errors.New("no <kit> root element")
	}

	summary := &KitSummary{FirmwareVersion: root.SelectAttr("firmwareVersion")}
	if idx := xmlquery.QuerySelector(doc, drumIdxExpr); idx != nil {
		summary.SelectedDrumIndex, _ = strconv.Atoi(strings.TrimSpace(idx.InnerText()))
	}

	for i, node := range xmlquery.QuerySelectorAll(doc, soundExpr) {
		row := RowSummary{Name: node.SelectAttr("name")}
		if osc := xmlquery.QuerySelector(node, osc1Expr); osc != nil {
			row.FileName = osc.SelectAttr("fileName")
			if v := osc.SelectAttr("loopMode"); v != "" {
				if row.LoopMode, err = strconv.Atoi(v); err != nil {
					return nil, fmt.Errorf("sound %d: loopMode %q: %w", i, v, err)
				}
			}
		}
		if zone := xmlquery.QuerySelector(node, zoneExpr); zone != nil {
			if row.Start, err = parsePos(zone, "startSamplePos"); err != nil {
				return nil, fmt.Errorf("sound %d: %w", i, err)
			}
			if row.End, err = parsePos(zone, "endSamplePos"); err != nil {
				return nil, fmt.Errorf("sound %d: %w", i, err)
			}
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

func parsePos(n *xmlquery.Node, name string) (uint64, error) {
	v := n.SelectAttr(name)
	if v == "" {
		return 0, nil
	}
	pos, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, v, err)
	}
	return pos, nil
}
