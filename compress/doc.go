// Package compress implements the single compression codec Total War Packs
// use for file payloads: a non-streamed ("LZMA-alone") stream wrapped in a
// four-byte-truncated custom header.
//
// # Wire format
//
//	u32 uncompressed_length
//	5 bytes  LZMA-alone properties block (1 props byte + 4-byte dict size)
//	N bytes  LZMA-alone payload, with the standard 8-byte uncompressed-size
//	         field removed
//
// A standard LZMA-alone stream is `5 bytes properties | 8 bytes
// uncompressed-length | payload`; this format is that stream with the
// uncompressed-length field truncated from 8 bytes down to the leading u32,
// so Decode has to reconstruct a standard header before handing the stream
// to a real LZMA decoder, and Encode has to strip it back out afterward.
//
// # Compatibility note
//
// Packs compressed with this format are only valid from Total War:
// Warhammer 2 onward (PFH5+, see the pack package); earlier generations
// never set the per-file compressed bit. Table payloads (db/loc) are never
// compressed regardless of generation — some shipped titles crash on
// startup when a Pack ships compressed tables, so callers above this
// package must not compress them (see pack's never-compress
// classification).
package compress
