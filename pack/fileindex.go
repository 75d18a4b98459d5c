package pack

import (
	"time"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/obfuscate"
)

// readDependencies reads the dependency index: count null-terminated ASCII
// names totalling dependencyBytes bytes.
func readDependencies(r *bytecursor.Reader, count uint32) ([]string, error) {
	deps := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		deps = append(deps, name)
	}
	return deps, nil
}

func writeDependencies(w *bytecursor.Writer, deps []string) {
	for _, d := range deps {
		w.WriteCString(d)
	}
}

// fileIndexEntry is one parsed file-index record before its payload bytes
// are resolved against the data blob.
type fileIndexEntry struct {
	size       uint32
	timestamp  time.Time
	hasTS      bool
	compressed bool
	path       string
}

// readFileIndex reads count file-index entries. When the index is
// encrypted, each path is obfuscated with a secondary key equal to the
// accumulated payload offset from the start of the data blob seen so far.
func readFileIndex(r *bytecursor.Reader, h header, count uint32) ([]fileIndexEntry, error) {
	entries := make([]fileIndexEntry, 0, count)
	var dataOffset int64

	for i := uint32(0); i < count; i++ {
		var e fileIndexEntry

		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		e.size = size

		if h.flags.Has(FlagIndexTimestamps) {
			switch h.generation.FileIndexTimestampWidth() {
			case 8:
				ticks, err := r.ReadU64()
				if err != nil {
					return nil, err
				}
				e.timestamp = windowsTicksToUnix(ticks)
				e.hasTS = true
			case 4:
				secs, err := r.ReadU32()
				if err != nil {
					return nil, err
				}
				e.timestamp = time.Unix(int64(secs), 0).UTC()
				e.hasTS = true
			}
		}

		if h.generation.HasCompressedFlag() {
			b, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			e.compressed = b != 0
		}

		if h.flags.Has(FlagEncryptedIndex) {
			path, err := obfuscate.DecryptString(r, uint8(dataOffset)) //nolint:gosec
			if err != nil {
				return nil, err
			}
			e.path = path
		} else {
			path, err := r.ReadCString()
			if err != nil {
				return nil, err
			}
			e.path = path
		}

		dataOffset += int64(e.size)
		entries = append(entries, e)
	}

	return entries, nil
}

// writeFileIndex writes the file index. The library only ever produces
// unencrypted output, so FlagEncryptedIndex is always
// cleared before this is called.
func writeFileIndex(w *bytecursor.Writer, h header, entries []fileIndexEntry) {
	for _, e := range entries {
		w.WriteU32(e.size)

		if h.flags.Has(FlagIndexTimestamps) {
			switch h.generation.FileIndexTimestampWidth() {
			case 8:
				w.WriteU64(unixToWindowsTicks(e.timestamp))
			case 4:
				var secs uint32
				if !e.timestamp.IsZero() {
					secs = uint32(e.timestamp.Unix()) //nolint:gosec
				}
				w.WriteU32(secs)
			}
		}

		if h.generation.HasCompressedFlag() {
			w.WriteBool(e.compressed)
		}

		w.WriteCString(e.path)
	}
}
