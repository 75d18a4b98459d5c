// Package extradata carries the per-call decode/encode context every
// TypedFileCodec and TableEngine operation threads through: schema,
// game identity, backing store handles, and the handful of flags that
// change how a payload is read or written. Every field is optional;
// callers that need one and don't find it get a named error back
// (see errs.MissingExtraDataField), never a zero-value silently used.
package extradata

import (
	"time"

	"github.com/twtools/packlib/internal/options"
	"github.com/twtools/packlib/schema"
	"github.com/twtools/packlib/tablepool"
)

// GameIdentity names the title a Pack belongs to, for payloads whose wire
// layout branches per game (group formations, some unit variants).
type GameIdentity string

const (
	GameUnknown       GameIdentity = ""
	GameEmpire        GameIdentity = "empire"
	GameNapoleon      GameIdentity = "napoleon"
	GameRome2         GameIdentity = "rome_2"
	GameShogun2       GameIdentity = "shogun_2"
	GameThreeKingdoms GameIdentity = "three_kingdoms"
	GameWarhammer2    GameIdentity = "warhammer_2"
	GameWarhammer3    GameIdentity = "warhammer_3"
	GameArena         GameIdentity = "arena"
)

// ExtraData is the read-side context passed to Decode.
type ExtraData struct {
	schema              *schema.Schema
	tableName           string
	gameIdentity        GameIdentity
	pool                *tablepool.Pool
	lazyLoad            bool
	disableCompression  bool
	regenerateTableGUID bool
	isEncrypted         bool
	diskFilePath        string
	diskFileOffset      int64
	dataSize            int64
	timestamp           time.Time
	hasTimestamp        bool
}

// Option configures an ExtraData via New.
type Option = options.Option[*ExtraData]

// New builds an ExtraData, applying opts in order.
func New(opts ...Option) (*ExtraData, error) {
	ed := &ExtraData{}
	if err := options.Apply(ed, opts...); err != nil {
		return nil, err
	}
	return ed, nil
}

func WithSchema(s *schema.Schema) Option {
	return options.NoError(func(ed *ExtraData) { ed.schema = s })
}

func WithTableName(name string) Option {
	return options.NoError(func(ed *ExtraData) { ed.tableName = name })
}

func WithGameIdentity(g GameIdentity) Option {
	return options.NoError(func(ed *ExtraData) { ed.gameIdentity = g })
}

func WithPool(p *tablepool.Pool) Option {
	return options.NoError(func(ed *ExtraData) { ed.pool = p })
}

func WithLazyLoad(enabled bool) Option {
	return options.NoError(func(ed *ExtraData) { ed.lazyLoad = enabled })
}

func WithDisableCompression(disabled bool) Option {
	return options.NoError(func(ed *ExtraData) { ed.disableCompression = disabled })
}

func WithRegenerateTableGUID(enabled bool) Option {
	return options.NoError(func(ed *ExtraData) { ed.regenerateTableGUID = enabled })
}

func WithEncrypted(enabled bool) Option {
	return options.NoError(func(ed *ExtraData) { ed.isEncrypted = enabled })
}

func WithDiskFilePath(path string) Option {
	return options.NoError(func(ed *ExtraData) { ed.diskFilePath = path })
}

func WithDiskFileOffset(offset int64) Option {
	return options.NoError(func(ed *ExtraData) { ed.diskFileOffset = offset })
}

func WithDataSize(size int64) Option {
	return options.NoError(func(ed *ExtraData) { ed.dataSize = size })
}

func WithTimestamp(t time.Time) Option {
	return options.NoError(func(ed *ExtraData) {
		ed.timestamp = t
		ed.hasTimestamp = true
	})
}

// Schema returns the decode schema and reports whether one was set.
func (ed *ExtraData) Schema() (*schema.Schema, bool) { return ed.schema, ed.schema != nil }

// TableName returns the logical table name (e.g. "land_units_tables") a
// db payload was read under, and reports whether it was set.
func (ed *ExtraData) TableName() (string, bool) { return ed.tableName, ed.tableName != "" }

// GameIdentity returns the game token threaded through per-game payload
// branches.
func (ed *ExtraData) GameIdentity() GameIdentity { return ed.gameIdentity }

// Pool returns the optional large-table backing store.
func (ed *ExtraData) Pool() (*tablepool.Pool, bool) { return ed.pool, ed.pool != nil }

func (ed *ExtraData) LazyLoad() bool            { return ed.lazyLoad }
func (ed *ExtraData) DisableCompression() bool  { return ed.disableCompression }
func (ed *ExtraData) RegenerateTableGUID() bool { return ed.regenerateTableGUID }
func (ed *ExtraData) IsEncrypted() bool         { return ed.isEncrypted }

func (ed *ExtraData) DiskFilePath() (string, bool) { return ed.diskFilePath, ed.diskFilePath != "" }
func (ed *ExtraData) DiskFileOffset() int64        { return ed.diskFileOffset }
func (ed *ExtraData) DataSize() int64              { return ed.dataSize }

// Timestamp returns the per-file timestamp and reports whether one was set.
func (ed *ExtraData) Timestamp() (time.Time, bool) { return ed.timestamp, ed.hasTimestamp }

// EncodeExtraData is the write-side counterpart of ExtraData. It is a
// distinct type because encode only ever consumes a subset of the fields
// read needs (no disk offsets, no lazy-load toggle), and keeping them
// separate means a caller can't accidentally feed read-only context into
// an encode path.
type EncodeExtraData struct {
	schema              *schema.Schema
	tableName           string
	gameIdentity        GameIdentity
	pool                *tablepool.Pool
	disableCompression  bool
	regenerateTableGUID bool
}

// EncodeOption configures an EncodeExtraData via NewEncode.
type EncodeOption = options.Option[*EncodeExtraData]

func NewEncode(opts ...EncodeOption) (*EncodeExtraData, error) {
	ed := &EncodeExtraData{}
	if err := options.Apply(ed, opts...); err != nil {
		return nil, err
	}
	return ed, nil
}

func WithEncodeSchema(s *schema.Schema) EncodeOption {
	return options.NoError(func(ed *EncodeExtraData) { ed.schema = s })
}

func WithEncodeTableName(name string) EncodeOption {
	return options.NoError(func(ed *EncodeExtraData) { ed.tableName = name })
}

func WithEncodeGameIdentity(g GameIdentity) EncodeOption {
	return options.NoError(func(ed *EncodeExtraData) { ed.gameIdentity = g })
}

func WithEncodePool(p *tablepool.Pool) EncodeOption {
	return options.NoError(func(ed *EncodeExtraData) { ed.pool = p })
}

func WithEncodeDisableCompression(disabled bool) EncodeOption {
	return options.NoError(func(ed *EncodeExtraData) { ed.disableCompression = disabled })
}

func WithEncodeRegenerateTableGUID(enabled bool) EncodeOption {
	return options.NoError(func(ed *EncodeExtraData) { ed.regenerateTableGUID = enabled })
}

func (ed *EncodeExtraData) Schema() (*schema.Schema, bool) { return ed.schema, ed.schema != nil }
func (ed *EncodeExtraData) TableName() (string, bool)      { return ed.tableName, ed.tableName != "" }
func (ed *EncodeExtraData) GameIdentity() GameIdentity     { return ed.gameIdentity }
func (ed *EncodeExtraData) Pool() (*tablepool.Pool, bool)  { return ed.pool, ed.pool != nil }
func (ed *EncodeExtraData) DisableCompression() bool       { return ed.disableCompression }
func (ed *EncodeExtraData) RegenerateTableGUID() bool      { return ed.regenerateTableGUID }
