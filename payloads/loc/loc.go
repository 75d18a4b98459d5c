// Package loc implements the binary locale table payload: a fixed header
// (byte-order mark, magic, version, entry count) followed by one
// {key, text, tooltip} record per entry.
package loc

import (
	"strings"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
	"github.com/twtools/packlib/table"
)

const (
	byteOrderMark  = 0xFEFF
	magic          = "LOC"
	currentVersion = uint32(1)
)

// Entry is one localization record.
type Entry struct {
	Key     string
	Text    string
	Tooltip bool
}

var _ table.LocaleEntry = (*Entry)(nil)

// LocaleKey returns the entry's key, satisfying table.LocaleEntry so
// table.CascadeEdit can rewrite it when a key column it was composed from
// changes.
func (e *Entry) LocaleKey() string { return e.Key }

// SetLocaleKey overwrites the entry's key in place.
func (e *Entry) SetLocaleKey(k string) { e.Key = k }

// Table is a decoded locale payload.
type Table struct {
	Version uint32
	Entries []Entry
}

func (Table) Kind() filetype.Kind { return filetype.Loc }

// Codec implements codec.TypedFileCodec for locale tables.
type Codec struct{}

// Decode reads the fixed header then Entry records until entryCount is
// exhausted. The header's declared entry_count is trusted; a short stream
// surfaces as the underlying bytecursor read error.
func (Codec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (*Table, error) {
	bom, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if bom != byteOrderMark {
		return nil, &errs.PayloadCorrupt{TypeName: "loc", Detail: "missing byte-order mark"}
	}

	magicBytes, err := r.ReadBytes(3)
	if err != nil {
		return nil, err
	}
	if string(magicBytes) != magic {
		return nil, &errs.PayloadCorrupt{TypeName: "loc", Detail: "missing LOC magic"}
	}

	if _, err := r.ReadU8(); err != nil { // reserved
		return nil, err
	}

	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	t := &Table{Version: version, Entries: make([]Entry, 0, count)}
	for i := uint32(0); i < count; i++ {
		key, err := r.ReadStringU16Long()
		if err != nil {
			return nil, err
		}
		text, err := r.ReadStringU16Long()
		if err != nil {
			return nil, err
		}
		tooltip, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		t.Entries = append(t.Entries, Entry{Key: unescape(key), Text: unescape(text), Tooltip: tooltip})
	}

	if !r.AtEnd() {
		return nil, &errs.MismatchSize{Expected: int64(r.Len()), Got: r.Pos()}
	}

	return t, nil
}

// Encode mirrors Decode exactly.
func (Codec) Encode(w *bytecursor.Writer, t *Table, ed *extradata.EncodeExtraData) error {
	w.WriteU16(byteOrderMark)
	w.WriteBytes([]byte(magic))
	w.WriteU8(0)
	version := t.Version
	if version == 0 {
		version = currentVersion
	}
	w.WriteU32(version)
	w.WriteU32(uint32(len(t.Entries))) //nolint:gosec

	for _, e := range t.Entries {
		w.WriteStringU16Long(escape(e.Key))
		w.WriteStringU16Long(escape(e.Text))
		w.WriteBool(e.Tooltip)
	}
	return nil
}

// escape/unescape apply the `\t`/`\n` escaping the rewriting discipline
// requires for key/text content.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
