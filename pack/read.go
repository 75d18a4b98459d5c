package pack

import (
	"sync"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/filetype"
)

// Open decodes a complete Pack from data: header, dependency index, file
// index, and a lazy or eager pass over every file's payload bytes.
func Open(data []byte, opts ...ReadOption) (*Pack, error) {
	cfg, err := newReadConfig(opts...)
	if err != nil {
		return nil, err
	}

	r := bytecursor.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	deps, err := readDependencies(r, h.dependencyCount)
	if err != nil {
		return nil, err
	}

	entries, err := readFileIndex(r, h, h.fileCount)
	if err != nil {
		return nil, err
	}

	p := &Pack{
		generation:         h.generation,
		role:               h.role,
		flags:              h.flags,
		internalTimestamp:  h.internalTimestamp,
		extendedHeaderData: h.extendedHeaderData,
		hasSubheader:       h.hasSubheader,
		subheaderVersion:   h.subheaderVersion,
		gameVersion:        h.gameVersion,
		buildNumber:        h.buildNumber,
		authoringTool:      h.authoringTool,
		dependencies:       deps,
		files:              make(map[string]*FileRecord, len(entries)),
		lookup:             make(map[uint64]string, len(entries)),
		notes:              NewNotes(),
		settings:           NewSettings(),
		diskFilePath:       cfg.diskFilePath,
		diskFileOffset:     cfg.diskFileOffset,
		registry:           cfg.registry,
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}

	dataStart := r.Pos()
	encryptedData := h.flags.Has(FlagEncryptedData)

	// Each file's window into the payload blob is resolved up front, then
	// type-guessed in parallel, before any lazy/eager materialization decision is made.
	kinds := make([]filetype.Kind, len(entries))
	var wg sync.WaitGroup
	offset := dataStart
	offsets := make([]int64, len(entries))
	for i, e := range entries {
		offsets[i] = offset
		offset += int64(e.size)
	}
	for i, e := range entries {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			kinds[i] = filetype.Guess(path)
		}(i, e.path)
	}
	wg.Wait()

	for i, e := range entries {
		ts, hasTS := e.timestamp, e.hasTS
		offset := offsets[i]
		length := int64(e.size)
		if offset+length > int64(len(data)) {
			return nil, &errs.MismatchSize{Expected: offset + length, Got: int64(len(data))}
		}

		kind := kinds[i]

		var rec *FileRecord
		shouldLazy := cfg.lazyLoad && cfg.diskFilePath != "" && !encryptedData && !e.compressed
		if shouldLazy {
			rec = newOnDiskRecord(e.path, kind, data, offset, length, e.compressed, ts, hasTS)
		} else {
			raw, err := (onDiskRef{backing: data, offset: offset, length: length, compressed: e.compressed}).materialize(encryptedData)
			if err != nil {
				return nil, err
			}
			rec = newCachedRecord(e.path, kind, raw, ts, hasTS, e.compressed)
		}

		p.putRecord(rec)
	}

	if err := p.loadReservedFiles(encryptedData); err != nil {
		return nil, err
	}

	return p, nil
}

// loadReservedFiles pulls notes.rpfm_reserved and settings.rpfm_reserved
// out of the freshly-populated file map and decodes them into Notes and
// Settings, then removes them from normal enumeration.
func (p *Pack) loadReservedFiles(encryptedData bool) error {
	if rec, ok := p.files[ReservedNotes]; ok {
		raw, err := rec.rawBytes(encryptedData)
		if err != nil {
			return err
		}
		p.notes = LoadNotes(raw)
		p.deleteRecord(ReservedNotes)
	}

	if rec, ok := p.files[ReservedSettings]; ok {
		raw, err := rec.rawBytes(encryptedData)
		if err != nil {
			return err
		}
		s, err := LoadSettings(raw)
		if err != nil {
			return err
		}
		p.settings = s
		p.deleteRecord(ReservedSettings)
	}

	delete(p.files, ReservedExtraPackfile)
	for i, k := range p.order {
		if k == ReservedExtraPackfile {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}

	return nil
}
