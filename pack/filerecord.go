package pack

import (
	"time"

	"github.com/twtools/packlib/codec"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/filetype"
)

// stateKind is a FileRecord's current lifecycle stage. Transitions are monotonic toward stateDecoded, except that
// encoding for save pulls decoded payloads back to stateCached.
type stateKind uint8

const (
	stateOnDisk stateKind = iota
	stateCached
	stateDecoded
)

// onDiskRef is a read-only window into the backing bytes a Pack was
// decoded from. Since this module's ByteCursor already operates over an
// in-memory []byte rather than an OS file handle, "holding a cursor into
// the original backing store" is just aliasing backing — no file
// descriptor is ever retained per file.
type onDiskRef struct {
	backing    []byte
	offset     int64
	length     int64
	compressed bool
}

// FileRecord is one logical file inside a Pack.
type FileRecord struct {
	path         string
	kind         filetype.Kind
	timestamp    time.Time
	hasTimestamp bool

	state      stateKind
	onDisk     onDiskRef
	cached     []byte
	decoded    codec.Payload
	dirty      bool
	compressed bool // original file-index compressed bit; false for in-memory-constructed records
}

// Path returns the file's container path.
func (f *FileRecord) Path() string { return f.path }

// Kind returns the guessed filetype.
func (f *FileRecord) Kind() filetype.Kind { return f.kind }

// Timestamp returns the file's per-entry timestamp, if the index carried one.
func (f *FileRecord) Timestamp() (time.Time, bool) { return f.timestamp, f.hasTimestamp }

// IsLazy reports whether the record is still backed by an on-disk window
// rather than having been materialized into memory.
func (f *FileRecord) IsLazy() bool { return f.state == stateOnDisk }

// Dirty reports whether a decoded payload has been modified since decode.
func (f *FileRecord) Dirty() bool { return f.state == stateDecoded && f.dirty }

// MarkDirty flags a decoded payload as modified. No-op on a record that
// isn't currently decoded.
func (f *FileRecord) MarkDirty() {
	if f.state == stateDecoded {
		f.dirty = true
	}
}

// newOnDiskRecord builds a lazily-loaded record backed by a window into
// the original Pack bytes.
func newOnDiskRecord(path string, kind filetype.Kind, backing []byte, offset, length int64, compressed bool, ts time.Time, hasTS bool) *FileRecord {
	return &FileRecord{
		path:         path,
		kind:         kind,
		timestamp:    ts,
		hasTimestamp: hasTS,
		state:        stateOnDisk,
		onDisk:       onDiskRef{backing: backing, offset: offset, length: length, compressed: compressed},
		compressed:   compressed,
	}
}

// newCachedRecord builds a record already holding raw (decompressed,
// decrypted) payload bytes in memory. compressed carries the file index's
// original compressed bit forward (false for a record with no file-index
// origin, e.g. one built in memory by a caller).
func newCachedRecord(path string, kind filetype.Kind, data []byte, ts time.Time, hasTS bool, compressed bool) *FileRecord {
	return &FileRecord{
		path:         path,
		kind:         kind,
		timestamp:    ts,
		hasTimestamp: hasTS,
		state:        stateCached,
		cached:       data,
		compressed:   compressed,
	}
}

// NewDecodedRecord builds a record from an already-decoded payload, e.g.
// one constructed in memory by a caller rather than read from a Pack.
func NewDecodedRecord(path string, payload codec.Payload) *FileRecord {
	return &FileRecord{
		path:    path,
		kind:    payload.Kind(),
		state:   stateDecoded,
		decoded: payload,
		dirty:   true,
	}
}

// NewRawRecord builds a record from raw bytes a caller already has in hand
// (e.g. an image or video blob the caller doesn't want decoded).
func NewRawRecord(path string, kind filetype.Kind, data []byte) *FileRecord {
	return newCachedRecord(path, kind, data, time.Time{}, false, false)
}

// RawBytes materializes and returns the file's raw (uncompressed,
// unencrypted) payload bytes without decoding it into a typed Payload.
// Exported for callers that need to inspect or byte-patch a file's content
// directly, such as the siege-map patcher.
func (f *FileRecord) RawBytes(encryptedData bool) ([]byte, error) {
	return f.rawBytes(encryptedData)
}

// SetRawBytes replaces the file's content with data, dropping any
// previously decoded payload and marking the record dirty.
func (f *FileRecord) SetRawBytes(data []byte) {
	f.cached = data
	f.decoded = nil
	f.state = stateCached
	f.dirty = true
	f.compressed = false
}

// rawBytes materializes and returns the file's raw (uncompressed,
// unencrypted) payload bytes without decoding it into a typed Payload.
// Used for reserved files and raw-blob kinds the registry has no codec for.
func (f *FileRecord) rawBytes(encryptedData bool) ([]byte, error) {
	switch f.state {
	case stateCached:
		return f.cached, nil
	case stateOnDisk:
		raw, err := f.onDisk.materialize(encryptedData)
		if err != nil {
			return nil, err
		}
		f.cached = raw
		f.state = stateCached
		return raw, nil
	case stateDecoded:
		return nil, &errs.PayloadCorrupt{TypeName: f.kind.String(), Detail: "rawBytes called on an already-decoded record"}
	default:
		return nil, errs.ErrPathNotFound
	}
}
