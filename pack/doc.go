// Package pack implements PackContainer: parsing and writing
// the binary Pack container across its six format generations, the
// dependency and file indexes, lazy-loaded file payloads, and the
// insert/remove/move/merge operations a Pack exposes to callers.
package pack
