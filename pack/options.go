package pack

import (
	"time"

	"github.com/twtools/packlib/codec"
	"github.com/twtools/packlib/internal/options"
)

// readConfig carries the Open-time knobs ExtraData also documents as
// Pack-relevant: lazy_load, is_encrypted (inferred from the header itself,
// not set by the caller), disk_file_path/offset, and timestamp.
type readConfig struct {
	lazyLoad       bool
	diskFilePath   string
	diskFileOffset int64
	localTimestamp time.Time
	registry       *codec.Registry
}

// ReadOption configures Open.
type ReadOption = options.Option[*readConfig]

func newReadConfig(opts ...ReadOption) (*readConfig, error) {
	cfg := &readConfig{lazyLoad: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithLazyLoad toggles whether file payloads stay as on-disk windows
// until first access (default true).
func WithLazyLoad(enabled bool) ReadOption {
	return options.NoError(func(c *readConfig) { c.lazyLoad = enabled })
}

// WithDiskFilePath records the path the bytes were read from, required
// for the lazy-load rule and for later save-as-same-path rebinding.
func WithDiskFilePath(path string) ReadOption {
	return options.NoError(func(c *readConfig) { c.diskFilePath = path })
}

// WithDiskFileOffset records a non-zero starting offset, for Packs
// embedded inside a larger container.
func WithDiskFileOffset(offset int64) ReadOption {
	return options.NoError(func(c *readConfig) { c.diskFileOffset = offset })
}

// WithLocalTimestamp records the caller's notion of "when was this file
// last modified on disk", exposed back via Pack for staleness checks.
func WithLocalTimestamp(t time.Time) ReadOption {
	return options.NoError(func(c *readConfig) { c.localTimestamp = t })
}

// WithRegistry overrides the default codec registry DefaultRegistry
// builds.
func WithRegistry(r *codec.Registry) ReadOption {
	return options.NoError(func(c *readConfig) { c.registry = r })
}

// writeConfig carries Save-time knobs.
type writeConfig struct {
	testMode           bool
	updateTimestamp    bool
	disableCompression bool
}

// WriteOption configures Bytes.
type WriteOption = options.Option[*writeConfig]

func newWriteConfig(opts ...WriteOption) (*writeConfig, error) {
	cfg := &writeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithTestMode skips writing the notes/settings reserved files, for
// round-trip tests that compare raw bytes against a fixture that predates
// this library's reserved-file convention.
func WithTestMode(enabled bool) WriteOption {
	return options.NoError(func(c *writeConfig) { c.testMode = enabled })
}

// WithUpdateTimestamp requests the internal timestamp be refreshed to the
// current time when Bytes serializes the Pack.
func WithUpdateTimestamp(enabled bool) WriteOption {
	return options.NoError(func(c *writeConfig) { c.updateTimestamp = enabled })
}

// WithDisableCompression skips compression entirely on save, regardless
// of each file's current compressed flag.
func WithDisableCompression(enabled bool) WriteOption {
	return options.NoError(func(c *writeConfig) { c.disableCompression = enabled })
}
