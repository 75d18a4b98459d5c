package pack

import (
	"sort"
	"strings"
	"time"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/codec"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
	"github.com/twtools/packlib/internal/hash"
)

// Pack is the in-memory, editable form of a decoded Pack container. Its
// file map preserves case-insensitive uniqueness and insertion order
// exactly as the wire format's declared file-order contract requires.
type Pack struct {
	generation Generation
	role       Role
	flags      Flags

	internalTimestamp  time.Time
	extendedHeaderData []byte
	hasSubheader       bool
	subheaderVersion   uint32
	gameVersion        uint32
	buildNumber        uint32
	authoringTool      string

	dependencies []string

	files map[string]*FileRecord // keyed by lower-cased path
	order []string               // lower-cased keys, insertion order
	// lookup is an xxHash64-keyed existence index (internal/hash), giving
	// an O(1) case-insensitive existence check alongside the ordered map
	// above.
	lookup map[uint64]string

	notes    *Notes
	settings *Settings

	diskFilePath   string
	diskFileOffset int64

	registry *codec.Registry
}

// New returns an empty Pack of the given generation, ready for Insert and
// Save.
func New(gen Generation) *Pack {
	return &Pack{
		generation: gen,
		role:       RoleMod,
		notes:      NewNotes(),
		settings:   NewSettings(),
		files:      make(map[string]*FileRecord),
		lookup:     make(map[uint64]string),
		registry:   DefaultRegistry(),
	}
}

func (p *Pack) Generation() Generation { return p.generation }
func (p *Pack) Role() Role             { return p.role }
func (p *Pack) Flags() Flags           { return p.flags }
func (p *Pack) SetRole(r Role)         { p.role = r }
func (p *Pack) SetFlags(f Flags)       { p.flags = f }

func (p *Pack) InternalTimestamp() time.Time     { return p.internalTimestamp }
func (p *Pack) SetInternalTimestamp(t time.Time) { p.internalTimestamp = t }

func (p *Pack) GameVersion() uint32       { return p.gameVersion }
func (p *Pack) BuildNumber() uint32       { return p.buildNumber }
func (p *Pack) AuthoringTool() string     { return p.authoringTool }
func (p *Pack) SetGameVersion(v uint32)   { p.gameVersion = v }
func (p *Pack) SetBuildNumber(v uint32)   { p.buildNumber = v }
func (p *Pack) SetAuthoringTool(s string) { p.authoringTool = s }

// SpoofAuthoringTool sets the authoring-tool subheader field to the
// official tool's own marker, or back to this library's marker when
// spoof is false.
func (p *Pack) SpoofAuthoringTool(spoof bool) {
	if spoof {
		p.authoringTool = "CA_TOOL"
	} else {
		p.authoringTool = "RPFM"
	}
}

func (p *Pack) Dependencies() []string { return append([]string(nil), p.dependencies...) }
func (p *Pack) SetDependencies(deps []string) {
	p.dependencies = append([]string(nil), deps...)
}

func (p *Pack) DiskFilePath() string  { return p.diskFilePath }
func (p *Pack) DiskFileOffset() int64 { return p.diskFileOffset }

func (p *Pack) Notes() *Notes       { return p.notes }
func (p *Pack) Settings() *Settings { return p.settings }

// Registry returns the typed-file codec registry this Pack materializes
// payloads through.
func (p *Pack) Registry() *codec.Registry { return p.registry }

// SetRegistry replaces the codec registry, e.g. to add a schema-aware
// wiring or a game-specific payload variant.
func (p *Pack) SetRegistry(r *codec.Registry) { p.registry = r }

// Paths returns every non-reserved container path in insertion order.
func (p *Pack) Paths() []string {
	out := make([]string, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.files[key].path)
	}
	return out
}

// File looks up a record by path, case-insensitively.
func (p *Pack) File(path string) (*FileRecord, bool) {
	rec, ok := p.files[strings.ToLower(path)]
	return rec, ok
}

// Has reports whether path exists, using the xxHash64 lookup index for an
// O(1) check without touching the ordered map.
func (p *Pack) Has(path string) bool {
	id := hash.ID(strings.ToLower(path))
	key, ok := p.lookup[id]
	if !ok {
		return false
	}
	return key == strings.ToLower(path)
}

// FilesByType returns every record whose guessed Kind is in kinds, in
// insertion order.
func (p *Pack) FilesByType(kinds ...filetype.Kind) []*FileRecord {
	want := make(map[filetype.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []*FileRecord
	for _, key := range p.order {
		rec := p.files[key]
		if want[rec.kind] {
			out = append(out, rec)
		}
	}
	return out
}

// FilesByFolder returns every record whose path begins with folder+"/"
// (or equals folder exactly), in insertion order.
func (p *Pack) FilesByFolder(folder string) []*FileRecord {
	prefix := strings.ToLower(strings.TrimSuffix(folder, "/")) + "/"
	var out []*FileRecord
	for _, key := range p.order {
		if key == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(key, prefix) {
			out = append(out, p.files[key])
		}
	}
	return out
}

func (p *Pack) putRecord(rec *FileRecord) {
	key := strings.ToLower(rec.path)
	if _, exists := p.files[key]; !exists {
		p.order = append(p.order, key)
	}
	p.files[key] = rec
	p.lookup[hash.ID(key)] = key
}

func (p *Pack) deleteRecord(key string) {
	delete(p.files, key)
	delete(p.lookup, hash.ID(key))
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// decodeRecord materializes rec's payload through the registry, caching
// the result on the record.
func (p *Pack) decodeRecord(rec *FileRecord, ed *extradata.ExtraData) (codec.Payload, error) {
	if rec.state == stateDecoded {
		return rec.decoded, nil
	}

	raw, err := rec.rawBytes(p.flags.Has(FlagEncryptedData))
	if err != nil {
		return nil, err
	}

	c, err := p.registry.Lookup(rec.kind)
	if err != nil {
		return nil, err
	}

	r := bytecursor.NewReader(raw)
	payload, err := c.Decode(r, ed)
	if err != nil {
		return nil, err
	}

	rec.decoded = payload
	rec.state = stateDecoded
	rec.dirty = false
	return payload, nil
}

// Decode materializes and decodes the payload at path, the way a caller
// inspecting a table or locale file would.
func (p *Pack) Decode(path string, ed *extradata.ExtraData) (codec.Payload, error) {
	rec, ok := p.File(path)
	if !ok {
		return nil, errs.ErrPathNotFound
	}
	return p.decodeRecord(rec, ed)
}

// sortedUnique returns a sorted, de-duplicated copy of in.
func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
