package pack

import (
	"time"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
)

// windowsTick and secToUnixEpoch convert the PFH2/PFH3 header's 8-byte Windows
// FILETIME-style tick count to and from Unix seconds.
const (
	windowsTick    = 10_000_000
	secToUnixEpoch = 11_644_473_600
)

func windowsTicksToUnix(ticks uint64) time.Time {
	if ticks == 0 {
		return time.Time{}
	}
	seconds := int64(ticks/windowsTick) - secToUnixEpoch
	return time.Unix(seconds, 0).UTC()
}

func unixToWindowsTicks(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.Unix()+secToUnixEpoch) * windowsTick
}

const mfhPreamble = "MFH"

const subheaderSize = 280

// header holds every field parsed from the fixed and optional portions of
// a Pack's header.
type header struct {
	generation         Generation
	role               Role
	flags              Flags
	dependencyCount    uint32
	dependencyBytes    uint32
	fileCount          uint32
	fileBytes          uint32
	internalTimestamp  time.Time
	extendedHeaderData []byte
	hasSubheader       bool
	subheaderVersion   uint32
	gameVersion        uint32
	buildNumber        uint32
	authoringTool      string
}

// readHeader parses the header starting at the reader's current position,
// skipping the Steam-only "MFH" padding marker first if present.
func readHeader(r *bytecursor.Reader) (header, error) {
	var h header

	if r.Remaining() >= 8 {
		peek, err := r.ReadBytes(3)
		if err != nil {
			return h, err
		}
		r.Seek(r.Pos() - 3)
		if string(peek) == mfhPreamble {
			r.Skip(8)
		}
	}

	preamble, err := r.ReadBytes(4)
	if err != nil {
		return h, err
	}
	gen, err := ParsePreamble(string(preamble))
	if err != nil {
		return h, err
	}
	h.generation = gen

	typeAndFlags, err := r.ReadU32()
	if err != nil {
		return h, err
	}
	h.role, h.flags = splitTypeAndFlags(typeAndFlags)

	if h.dependencyCount, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.dependencyBytes, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.fileCount, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.fileBytes, err = r.ReadU32(); err != nil {
		return h, err
	}

	switch {
	case gen.HasInternalTimestampU64():
		ticks, err := r.ReadU64()
		if err != nil {
			return h, err
		}
		h.internalTimestamp = windowsTicksToUnix(ticks)
	case gen.HasInternalTimestampU32():
		secs, err := r.ReadU32()
		if err != nil {
			return h, err
		}
		h.internalTimestamp = time.Unix(int64(secs), 0).UTC()
	}

	if gen.SupportsExtendedHeader() && h.flags.Has(FlagExtendedHeader) {
		data, err := r.ReadBytes(20)
		if err != nil {
			return h, err
		}
		h.extendedHeaderData = append([]byte(nil), data...)
	}

	if gen.HasSubheader() {
		if err := readSubheader(r, &h); err != nil {
			return h, err
		}
	}

	return h, nil
}

func readSubheader(r *bytecursor.Reader, h *header) error {
	start := r.Pos()
	if r.Remaining() < subheaderSize {
		return &errs.PayloadCorrupt{TypeName: "pack", Detail: "truncated subheader"}
	}

	marker, err := r.ReadU32()
	if err != nil {
		return err
	}
	if marker == 0 {
		// No subheader actually present; rewind and leave defaults.
		r.Seek(start)
		return nil
	}
	h.hasSubheader = true

	if h.subheaderVersion, err = r.ReadU32(); err != nil {
		return err
	}
	if h.gameVersion, err = r.ReadU32(); err != nil {
		return err
	}
	if h.buildNumber, err = r.ReadU32(); err != nil {
		return err
	}
	// The subheader's authoring-tool field is 8 zero-padded ASCII bytes.
	toolBytes, err := r.ReadBytes(8)
	if err != nil {
		return err
	}
	h.authoringTool = trimNulASCII(toolBytes)

	if _, err := r.ReadBytes(256); err != nil { // reserved
		return err
	}
	return nil
}

func trimNulASCII(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// writeHeader writes h's fixed and optional fields, mirroring readHeader
// exactly field for field.
func writeHeader(w *bytecursor.Writer, h header) {
	w.WriteBytes([]byte(h.generation.Preamble()))
	w.WriteU32(joinTypeAndFlags(h.role, h.flags))
	w.WriteU32(h.dependencyCount)
	w.WriteU32(h.dependencyBytes)
	w.WriteU32(h.fileCount)
	w.WriteU32(h.fileBytes)

	switch {
	case h.generation.HasInternalTimestampU64():
		w.WriteU64(unixToWindowsTicks(h.internalTimestamp))
	case h.generation.HasInternalTimestampU32():
		var secs uint32
		if !h.internalTimestamp.IsZero() {
			secs = uint32(h.internalTimestamp.Unix()) //nolint:gosec
		}
		w.WriteU32(secs)
	}

	if h.generation.SupportsExtendedHeader() && h.flags.Has(FlagExtendedHeader) {
		data := h.extendedHeaderData
		if len(data) != 20 {
			data = make([]byte, 20)
		}
		w.WriteBytes(data)
	}

	if h.generation.HasSubheader() {
		writeSubheader(w, h)
	}
}

func writeSubheader(w *bytecursor.Writer, h header) {
	w.WriteU32(1) // marker
	w.WriteU32(h.subheaderVersion)
	w.WriteU32(h.gameVersion)
	w.WriteU32(h.buildNumber)
	tool := []byte(h.authoringTool)
	if len(tool) > 8 {
		tool = tool[:8]
	}
	padded := make([]byte, 8)
	copy(padded, tool)
	w.WriteBytes(padded)
	w.WriteBytes(make([]byte, 256))
}
