// Package esf implements the campaign save-state payload (.esf/.ccd/.save):
// a typed node tree (records, primitives, primitive arrays) framed by a
// small fixed header and three trailing string tables the tree's record
// names and string values are interned into.
//
// Very large save trees carry a compressed copy of themselves: when the
// root's first child list ends in a record tagged as compressed data, the
// blob inside it is decompressed and decoded in place of the outer tree,
// and the reverse wrapping happens on encode for trees whose top level
// carries a known compressible record. The wrapping compressor is the
// same truncated-header stream package compress implements for Pack
// payloads.
package esf

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/compress"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Signature is the leading magic of the one tree layout this package
// implements; the two earlier layouts predate every container generation
// this module reads.
const Signature uint32 = 0xABCA

const (
	compressedDataTag     = "COMPRESSED_DATA"
	compressedDataInfoTag = "COMPRESSED_DATA_INFO"
)

// compressedTags names the top-level records that are stored compressed
// at rest.
var compressedTags = map[string]bool{
	"CAMPAIGN_ENV": true,
}

// ESF is the decoded payload.
type ESF struct {
	Unknown1     uint32
	CreationDate uint32
	Root         Node
}

func (ESF) Kind() filetype.Kind { return filetype.Esf }

// Codec implements codec.TypedFileCodec for save-state trees.
type Codec struct{}

// Decode reads the header, jumps to the string tables (the nodes
// reference them by index, so they must be decoded first), then decodes
// the node tree and, if the tree carries a compressed copy of itself,
// unwraps it.
func (c Codec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (*ESF, error) {
	sig, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if sig != Signature {
		return nil, &errs.UnsupportedVersion{TypeName: "esf.ESF", Version: int64(sig)}
	}

	out := &ESF{}
	if out.Unknown1, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if out.CreationDate, err = r.ReadU32(); err != nil {
		return nil, err
	}
	recordNamesOffset, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	nodesOffset := r.Pos()

	tables, err := readStringTables(r, int64(recordNamesOffset))
	if err != nil {
		return nil, err
	}

	r.Seek(nodesOffset)
	dec := &decoder{r: r, tables: tables}
	root, err := dec.readNode()
	if err != nil {
		return nil, err
	}
	if r.Pos() != int64(recordNamesOffset) {
		return nil, &errs.MismatchSize{Expected: int64(recordNamesOffset), Got: r.Pos()}
	}
	out.Root = root

	if inner, ok, err := c.unwrapCompressed(out, ed); err != nil {
		return nil, err
	} else if ok {
		return inner, nil
	}
	return out, nil
}

// unwrapCompressed checks the root's first child list for a trailing
// compressed-data record, and if present decompresses and decodes the
// whole tree it carries.
func (c Codec) unwrapCompressed(out *ESF, ed *extradata.ExtraData) (*ESF, bool, error) {
	rec := out.Root.Record
	if rec == nil || len(rec.Children) == 0 || len(rec.Children[0]) == 0 {
		return nil, false, nil
	}
	last := rec.Children[0][len(rec.Children[0])-1]
	cnode := last.Record
	if cnode == nil || cnode.Name != compressedDataTag || len(cnode.Children) == 0 || len(cnode.Children[0]) < 2 {
		return nil, false, nil
	}

	data := cnode.Children[0][0]
	info := cnode.Children[0][1].Record
	if data.Kind != NodeU8Array || info == nil || info.Name != compressedDataInfoTag {
		return nil, false, nil
	}
	if len(info.Children) == 0 || len(info.Children[0]) < 2 {
		return nil, false, nil
	}
	lenNode := info.Children[0][0]
	magicNode := info.Children[0][1]
	if lenNode.Kind != NodeU32 || magicNode.Kind != NodeU8Array {
		return nil, false, nil
	}

	wire := bytecursor.NewWriter()
	wire.WriteU32(uint32(lenNode.U)) //nolint:gosec
	wire.WriteBytes(magicNode.Bytes)
	wire.WriteBytes(data.Bytes)

	plain, err := compress.LZMACodec{}.Decompress(wire.Bytes())
	if err != nil {
		return nil, false, err
	}

	inner, err := c.Decode(bytecursor.NewReader(plain), ed)
	if err != nil {
		return nil, false, err
	}
	return inner, true, nil
}

// Encode writes the tree back out. Trees whose top level contains a
// record stored compressed at rest are first encoded uncompressed in
// full, compressed, and wrapped in the standard compressed-data record;
// the wrapping happens on a copy, so encoding the same ESF twice yields
// identical bytes.
func (c Codec) Encode(w *bytecursor.Writer, e *ESF, ed *extradata.EncodeExtraData) error {
	disable := ed != nil && ed.DisableCompression()
	if !disable {
		wrapped, err := c.wrapCompressed(e, ed)
		if err != nil {
			return err
		}
		if wrapped != nil {
			e = wrapped
		}
	}

	w.WriteU32(Signature)
	w.WriteU32(e.Unknown1)
	w.WriteU32(e.CreationDate)

	tables := &stringTables{
		nameIndex:  map[string]uint16{},
		utf8Index:  map[string]uint32{},
		utf16Index: map[string]uint32{},
	}
	tables.collect(e.Root)

	nodes := bytecursor.NewWriter()
	enc := &encoder{w: nodes, tables: tables, base: nodesStart}
	if err := enc.writeNode(e.Root); err != nil {
		return err
	}

	w.WriteU32(uint32(nodesStart + nodes.Len())) //nolint:gosec
	w.WriteBytes(nodes.Bytes())
	writeStringTables(w, tables)
	return nil
}

// nodesStart is the absolute offset of the first node: the signature
// plus the three header fields plus the record-names offset field.
const nodesStart int64 = 16

// wrapCompressed returns a copy of e with its compressible top-level
// record replaced by the compressed-data wrapper, or nil when e has
// nothing to compress.
func (c Codec) wrapCompressed(e *ESF, ed *extradata.EncodeExtraData) (*ESF, error) {
	rec := e.Root.Record
	if rec == nil {
		return nil, nil
	}
	found := false
	for _, list := range rec.Children {
		for _, child := range list {
			if child.Record != nil && compressedTags[child.Record.Name] {
				found = true
			}
		}
	}
	if !found {
		return nil, nil
	}

	// Encode the whole tree once uncompressed.
	plainW := bytecursor.NewWriter()
	plainED, err := extradata.NewEncode(extradata.WithEncodeDisableCompression(true))
	if err != nil {
		return nil, err
	}
	if err := c.Encode(plainW, e, plainED); err != nil {
		return nil, err
	}

	wire, err := compress.LZMACodec{}.Compress(plainW.Bytes())
	if err != nil {
		return nil, err
	}
	// The wire stream splits into its 9 leading header bytes (u32
	// uncompressed length + 5 property bytes) and the body.
	hdr := bytecursor.NewReader(wire[:9])
	length, err := hdr.ReadU32()
	if err != nil {
		return nil, err
	}
	magic, err := hdr.ReadBytes(5)
	if err != nil {
		return nil, err
	}

	infoNode := RecordNode{
		Name: compressedDataInfoTag,
		Children: [][]Node{{
			{Kind: NodeU32, U: uint64(length)},
			{Kind: NodeU8Array, Bytes: append([]byte(nil), magic...)},
		}},
	}
	compressedNode := RecordNode{
		Name: compressedDataTag,
		Children: [][]Node{{
			{Kind: NodeU8Array, Bytes: wire[9:]},
			{Kind: NodeRecord, Record: &infoNode},
		}},
	}

	// Only the first compressible record is wrapped; the whole tree
	// (that record included, uncompressed) is what the wrapper carries.
	root := cloneRecord(rec)
replace:
	for li, list := range root.Children {
		for ci, child := range list {
			if child.Record != nil && compressedTags[child.Record.Name] {
				root.Children[li][ci] = Node{Kind: NodeRecord, Record: &compressedNode}
				break replace
			}
		}
	}

	return &ESF{
		Unknown1:     e.Unknown1,
		CreationDate: e.CreationDate,
		Root:         Node{Kind: NodeRecord, Record: root},
	}, nil
}

func cloneRecord(rec *RecordNode) *RecordNode {
	out := &RecordNode{Name: rec.Name, Version: rec.Version, Block: rec.Block}
	out.Children = make([][]Node, len(rec.Children))
	for i, list := range rec.Children {
		out.Children[i] = append([]Node(nil), list...)
	}
	return out
}
