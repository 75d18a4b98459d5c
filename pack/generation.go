package pack

import "github.com/twtools/packlib/errs"

// Generation is one of the six Pack wire-format revisions, identified by
// the 4-byte ASCII preamble at the start of the header. There is no PFH1: the real engine skipped that number.
type Generation uint8

const (
	GenUnknown Generation = iota
	PFH0
	PFH2
	PFH3
	PFH4
	PFH5
	PFH6
)

var preambles = map[Generation]string{
	PFH0: "PFH0",
	PFH2: "PFH2",
	PFH3: "PFH3",
	PFH4: "PFH4",
	PFH5: "PFH5",
	PFH6: "PFH6",
}

var generationsByPreamble = map[string]Generation{
	"PFH0": PFH0,
	"PFH2": PFH2,
	"PFH3": PFH3,
	"PFH4": PFH4,
	"PFH5": PFH5,
	"PFH6": PFH6,
}

// Preamble returns the 4-byte ASCII tag this generation writes at the start
// of its header.
func (g Generation) Preamble() string { return preambles[g] }

func (g Generation) String() string {
	if s, ok := preambles[g]; ok {
		return s
	}
	return "unknown"
}

// ParsePreamble resolves a 4-byte header preamble to its Generation.
func ParsePreamble(s string) (Generation, error) {
	g, ok := generationsByPreamble[s]
	if !ok {
		return GenUnknown, &errs.PayloadCorrupt{TypeName: "pack", Detail: "unknown preamble " + s}
	}
	return g, nil
}

// HasInternalTimestampU64 reports whether this generation's header stores
// the internal timestamp as an 8-byte Windows-tick value (PFH2/PFH3).
func (g Generation) HasInternalTimestampU64() bool { return g == PFH2 || g == PFH3 }

// HasInternalTimestampU32 reports whether this generation's header stores
// the internal timestamp as a truncated 4-byte Unix-seconds value
// (PFH4 and later).
func (g Generation) HasInternalTimestampU32() bool {
	return g == PFH4 || g == PFH5 || g == PFH6
}

// SupportsExtendedHeader reports whether this generation understands the
// 20-byte extended header block when the HAS_EXTENDED_HEADER flag is set.
// PFH0 predates the flag entirely.
func (g Generation) SupportsExtendedHeader() bool { return g != PFH0 && g != GenUnknown }

// HasSubheader reports whether this generation carries the 280-byte
// subheader (PFH6 only).
func (g Generation) HasSubheader() bool { return g == PFH6 }

// HasCompressedFlag reports whether the file index carries a per-file
// compressed-bit (PFH5 and later).
func (g Generation) HasCompressedFlag() bool { return g == PFH5 || g == PFH6 }

// FileIndexTimestampWidth returns the byte width of the per-file timestamp
// in the file index when HAS_INDEX_WITH_TIMESTAMPS is set: 8 for PFH2/PFH3,
// 4 for PFH4 and later, 0 for PFH0 (which never carries one).
func (g Generation) FileIndexTimestampWidth() int {
	switch {
	case g == PFH2 || g == PFH3:
		return 8
	case g == PFH4 || g == PFH5 || g == PFH6:
		return 4
	default:
		return 0
	}
}
