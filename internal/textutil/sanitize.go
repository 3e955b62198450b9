package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// deviceReplacement stands in for characters the device cannot display.
const deviceReplacement = '_'

// DeviceName transliterates a label into the printable ASCII range the
// Deluge displays. Diacritics are stripped (é -> e), runs of whitespace
// collapse to one space, anything else outside the range becomes an
// underscore, and the result is cut to maxLen characters. The mapping is
// pure: the same label always yields the same name.
func DeviceName(label string, maxLen int) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		if r > ' ' && r < unicode.MaxASCII {
			b.WriteRune(r)
		} else {
			b.WriteRune(deviceReplacement)
		}
	}
	return Truncate(b.String(), maxLen)
}

// Truncate cuts an ASCII name to at most maxLen bytes and drops trailing
// spaces left by the cut. A non-positive maxLen leaves the name unchanged.
func Truncate(name string, maxLen int) string {
	if maxLen > 0 && len(name) > maxLen {
		name = name[:maxLen]
	}
	return strings.TrimRight(name, " ")
}

// WithSuffix appends suffix to base, shortening base so the result stays
// within maxLen.
func WithSuffix(base, suffix string, maxLen int) string {
	if maxLen > 0 && len(base)+len(suffix) > maxLen {
		if keep := maxLen - len(suffix); keep > 0 {
			base = Truncate(base, keep)
		} else {
			base = ""
		}
	}
	return base + suffix
}
