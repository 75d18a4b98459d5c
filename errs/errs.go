// Package errs collects the sentinel errors returned across packlib.
//
// Every fallible operation in this module returns one of these sentinels
// (optionally wrapped with fmt.Errorf's %w, or carried inside one of the
// parametrized error types below) instead of an ad hoc string built at the
// call site. Callers match with errors.Is/errors.As once and act, regardless
// of which package or code path produced the failure.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingExtraData is returned when a decode/encode call receives a
	// nil ExtraData but the payload being processed requires one.
	ErrMissingExtraData = errors.New("packlib: required extra data not provided")

	// ErrUnknownFileType is returned when a payload's container type cannot
	// be determined from its path or leading bytes.
	ErrUnknownFileType = errors.New("packlib: unknown file type")

	// ErrDecompressionFailed is returned when both compressor decode
	// attempts (see compress.Decompress) fail.
	ErrDecompressionFailed = errors.New("packlib: decompression failed")

	// ErrDataCannotBeCompressed is returned when the compressor's encoder
	// output is too short to contain a valid header, so the source is
	// treated as incompressible.
	ErrDataCannotBeCompressed = errors.New("packlib: data cannot be compressed")

	// ErrDecryptionFailed is returned when an obfuscated index or payload
	// cannot be reversed (only used for malformed length framing; the
	// block/integer/string primitives themselves never fail).
	ErrDecryptionFailed = errors.New("packlib: decryption failed")

	// ErrReservedPath is returned when a caller tries to insert, move, or
	// otherwise directly manipulate one of the Pack's reserved paths.
	ErrReservedPath = errors.New("packlib: path is reserved for internal use")

	// ErrEmptyDestination is returned by insert/move operations given an
	// empty destination path.
	ErrEmptyDestination = errors.New("packlib: destination path is empty")

	// ErrPathNotFound is returned when a lookup, remove, or move operation
	// references a path that does not exist in the Pack.
	ErrPathNotFound = errors.New("packlib: path not found")

	// ErrSchemaDefinitionNotFound is returned when no table definition
	// matches a table's declared (or auto-detected) version.
	ErrSchemaDefinitionNotFound = errors.New("packlib: no matching schema definition found")

	// ErrTableMergeNameMismatch is returned when Merge is called on tables
	// whose names differ.
	ErrTableMergeNameMismatch = errors.New("packlib: cannot merge tables with different names")

	// ErrNotLazyLoaded is returned when an operation that requires a live
	// on-disk backing cursor is attempted on a file record that isn't
	// (or is no longer) backed by one.
	ErrNotLazyLoaded = errors.New("packlib: file is not lazily loaded")

	// ErrShortRead is returned by ByteCursor when fewer bytes remain than
	// the caller requested.
	ErrShortRead = errors.New("packlib: short read")

	// ErrInvalidUTF8 is returned when a length-prefixed string fails UTF-8
	// (or, for the zero-padded UTF-16LE variant, surrogate) validation.
	ErrInvalidUTF8 = errors.New("packlib: invalid encoded string")

	// ErrOversizedRead is returned when a caller-supplied bound is smaller
	// than the length actually encoded in the stream.
	ErrOversizedRead = errors.New("packlib: read exceeds caller-supplied bound")

	// ErrSiegeAIEmptyPack is returned by the siege-map patcher when the
	// Pack has no files at all.
	ErrSiegeAIEmptyPack = errors.New("packlib: cannot patch siege AI on an empty pack")

	// ErrSiegeAINoPatchableFiles is returned by the siege-map patcher when
	// no file under the map-assembly-kit folder needed patching or
	// deletion.
	ErrSiegeAINoPatchableFiles = errors.New("packlib: no file suitable for siege AI patching found")
)

// MissingExtraDataField reports that a specific named ExtraData field was
// required by a decode/encode path but left unset.
type MissingExtraDataField struct {
	Field string
}

func (e *MissingExtraDataField) Error() string {
	return fmt.Sprintf("packlib: missing extra data field %q", e.Field)
}

func (e *MissingExtraDataField) Is(target error) bool {
	return target == ErrMissingExtraData
}

// MismatchSize reports that a decode path finished reading before (or after)
// consuming exactly the number of bytes the container declared for it.
type MismatchSize struct {
	Expected int64
	Got      int64
}

func (e *MismatchSize) Error() string {
	return fmt.Sprintf("packlib: size mismatch, expected %d bytes, got %d", e.Expected, e.Got)
}

// UnsupportedVersion reports a payload version with no registered sub-codec.
type UnsupportedVersion struct {
	TypeName string
	Version  int64
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("packlib: unsupported %s version %d", e.TypeName, e.Version)
}

// PayloadCorrupt reports a structural decode failure specific to one payload
// type, with a human-readable detail describing what was expected.
type PayloadCorrupt struct {
	TypeName string
	Detail   string
}

func (e *PayloadCorrupt) Error() string {
	return fmt.Sprintf("packlib: %s payload corrupt: %s", e.TypeName, e.Detail)
}

// UnsupportedGame reports that a payload's decode/encode logic branches on
// ExtraData.GameIdentity and the supplied key has no known branch.
type UnsupportedGame struct {
	Key string
}

func (e *UnsupportedGame) Error() string {
	return fmt.Sprintf("packlib: unsupported game identity %q", e.Key)
}

// UnsupportedFieldType reports a table field kind a decoder refuses to guess
// at rather than silently mis-decode (see schema.FieldType's "list" kind).
type UnsupportedFieldType struct {
	Kind string
}

func (e *UnsupportedFieldType) Error() string {
	return fmt.Sprintf("packlib: unsupported field type %q", e.Kind)
}

// IncompleteTable carries a partially decoded table alongside the error that
// interrupted decoding, so salvage UIs can still inspect what was read.
// Partial is declared as `any` here (instead of *table.Table) to avoid an
// import cycle between errs and table; callers type-assert it back.
type IncompleteTable struct {
	Detail  string
	Partial any
}

func (e *IncompleteTable) Error() string {
	return fmt.Sprintf("packlib: incomplete table: %s", e.Detail)
}
