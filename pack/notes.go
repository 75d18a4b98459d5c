package pack

import (
	"encoding/json"
	"strings"
)

// FileNote is one note attached to a container path.
type FileNote struct {
	ID      uint64 `json:"id"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Notes is the decoded form of the notes.rpfm_reserved embedded file:
// freeform Pack-level markdown plus per-path file notes.
type Notes struct {
	PackNotes string                `json:"pack_notes"`
	FileNotes map[string][]FileNote `json:"file_notes"`
}

// NewNotes returns an empty Notes document.
func NewNotes() *Notes {
	return &Notes{FileNotes: make(map[string][]FileNote)}
}

// LoadNotes parses a notes.rpfm_reserved payload. If the bytes don't parse
// as JSON, the whole payload is treated as a legacy pre-JSON pack_notes
// string.
func LoadNotes(data []byte) *Notes {
	n := NewNotes()
	if err := json.Unmarshal(data, n); err != nil {
		n.PackNotes = string(data)
		n.FileNotes = make(map[string][]FileNote)
		return n
	}
	if n.FileNotes == nil {
		n.FileNotes = make(map[string][]FileNote)
	}
	return n
}

// Marshal serializes Notes back to its JSON wire form.
func (n *Notes) Marshal() ([]byte, error) {
	if n.FileNotes == nil {
		n.FileNotes = make(map[string][]FileNote)
	}
	return json.MarshalIndent(n, "", "  ")
}

// NotesForPath returns every note that applies to path, honoring the
// db/<table>/ prefix rule: a note recorded against a table's folder
// applies to every file under it.
func (n *Notes) NotesForPath(path string) []FileNote {
	lower := strings.ToLower(path)
	var out []FileNote
	for notedPath, notes := range n.FileNotes {
		np := strings.ToLower(notedPath)
		if np == lower || (np != "" && strings.HasPrefix(lower, np)) {
			out = append(out, notes...)
		}
	}
	return out
}

// AddNote appends a note for path, sharing notes across every file of the
// same DB table when path lives under db/<table>/<file>: table-folder
// notes apply pack-wide to the table.
func (n *Notes) AddNote(note FileNote) FileNote {
	target := notePathFor(note.Path)
	note.Path = target

	existing := n.FileNotes[target]
	if note.ID == 0 {
		var maxID uint64
		for _, e := range existing {
			if e.ID > maxID {
				maxID = e.ID
			}
		}
		note.ID = maxID + 1
	} else {
		filtered := existing[:0:0]
		for _, e := range existing {
			if e.ID != note.ID {
				filtered = append(filtered, e)
			}
		}
		existing = filtered
	}

	n.FileNotes[target] = append(existing, note)
	return note
}

// DeleteNote removes the note with the given id recorded against path.
func (n *Notes) DeleteNote(path string, id uint64) {
	target := notePathFor(path)
	existing := n.FileNotes[target]
	out := existing[:0:0]
	for _, e := range existing {
		if e.ID != id {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		delete(n.FileNotes, target)
		return
	}
	n.FileNotes[target] = out
}

// notePathFor collapses a db/<table>/<file> path down to its table folder,
// so table-level notes are shared across every file of that table.
func notePathFor(path string) string {
	lower := strings.ToLower(path)
	if !strings.HasPrefix(lower, "db/") {
		return lower
	}
	parts := strings.Split(lower, "/")
	if len(parts) == 3 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}
