package pack

import (
	"time"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
)

// Bytes serializes the Pack to its complete wire form: header, dependency
// index, file index, then every payload concatenated in file-index order.
func (p *Pack) Bytes(opts ...WriteOption) ([]byte, error) {
	cfg, err := newWriteConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.updateTimestamp {
		p.internalTimestamp = time.Now().UTC()
	}

	if err := p.attachReservedFiles(cfg); err != nil {
		return nil, err
	}
	defer p.detachReservedFiles()

	paths := append([]string(nil), p.order...)

	entries := make([]fileIndexEntry, 0, len(paths))
	payloads := make([][]byte, 0, len(paths))
	var dataLen int64
	var depLen uint32

	for _, dep := range p.dependencies {
		depLen += uint32(len(dep)) + 1 //nolint:gosec
	}

	for _, key := range paths {
		rec := p.files[key]

		raw, err := p.recordRawBytesForSave(rec)
		if err != nil {
			return nil, err
		}

		doCompress := !cfg.disableCompression && !rec.kind.NeverCompressible() && p.wasCompressed(rec)

		payload := raw
		if doCompress {
			compressed, err := lzmaCodec.Compress(raw)
			if err != nil {
				return nil, err
			}
			payload = compressed
		}

		entries = append(entries, fileIndexEntry{
			size:       uint32(len(payload)), //nolint:gosec
			timestamp:  rec.timestamp,
			hasTS:      rec.hasTimestamp,
			compressed: doCompress,
			path:       rec.path,
		})
		payloads = append(payloads, payload)
		dataLen += int64(len(payload))
	}

	h := header{
		generation:         p.generation,
		role:               p.role,
		flags:              p.flags &^ FlagEncryptedIndex &^ FlagEncryptedData,
		dependencyCount:    uint32(len(p.dependencies)), //nolint:gosec
		dependencyBytes:    depLen,
		fileCount:          uint32(len(entries)), //nolint:gosec
		fileBytes:          uint32(dataLen),      //nolint:gosec
		internalTimestamp:  p.internalTimestamp,
		extendedHeaderData: p.extendedHeaderData,
		hasSubheader:       p.hasSubheader,
		subheaderVersion:   p.subheaderVersion,
		gameVersion:        p.gameVersion,
		buildNumber:        p.buildNumber,
		authoringTool:      p.authoringTool,
	}

	w := bytecursor.NewWriter()
	writeHeader(w, h)
	writeDependencies(w, p.dependencies)
	writeFileIndex(w, h, entries)
	for _, payload := range payloads {
		w.WriteBytes(payload)
	}

	return w.Bytes(), nil
}

// wasCompressed reports whether rec should be written back compressed: a
// record read from a file index (whether still lazy or since materialized)
// keeps its original compressed bit; a record built in memory by a caller
// was never compressed and defaults to false.
func (p *Pack) wasCompressed(rec *FileRecord) bool {
	return rec.compressed
}

// recordRawBytesForSave returns rec's raw payload bytes, encoding a
// decoded payload back through its registered codec first if needed. Lazy
// records are fully materialized here — save never truncates a still-lazy
// window in place.
func (p *Pack) recordRawBytesForSave(rec *FileRecord) ([]byte, error) {
	if rec.state != stateDecoded {
		return rec.rawBytes(false)
	}

	c, err := p.registry.Lookup(rec.kind)
	if err != nil {
		return nil, err
	}

	ed, err := extradata.NewEncode()
	if err != nil {
		return nil, err
	}

	w := bytecursor.NewWriter()
	if err := c.Encode(w, rec.decoded, ed); err != nil {
		return nil, err
	}

	raw := w.Bytes()
	rec.cached = append([]byte(nil), raw...)
	rec.state = stateCached
	rec.dirty = false
	return rec.cached, nil
}

// attachReservedFiles serializes Notes and Settings into their reserved
// container paths so they round-trip through the normal file index. Skipped in test mode so round-trip fixtures that predate this
// library's reserved-file convention still compare byte-for-byte.
func (p *Pack) attachReservedFiles(cfg *writeConfig) error {
	if cfg.testMode || p.role != RoleMod {
		return nil
	}

	notesData, err := p.notes.Marshal()
	if err != nil {
		return err
	}
	p.putRecord(newCachedRecord(ReservedNotes, 0, notesData, p.internalTimestamp, false, false))

	settingsData, err := p.settings.Marshal()
	if err != nil {
		return err
	}
	p.putRecord(newCachedRecord(ReservedSettings, 0, settingsData, p.internalTimestamp, false, false))

	return nil
}

// detachReservedFiles removes the reserved files Save attached so the live
// Pack's enumeration stays exactly as the caller left it.
func (p *Pack) detachReservedFiles() {
	p.deleteRecord(ReservedNotes)
	p.deleteRecord(ReservedSettings)
}
