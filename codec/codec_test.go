package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

type stubPayload struct{ kind filetype.Kind }

func (p stubPayload) Kind() filetype.Kind { return p.kind }

func TestVersionTableDispatch(t *testing.T) {
	require := require.New(t)
	vt := NewVersionTable("stub")
	vt.Register(1,
		func(r *bytecursor.Reader, ed *extradata.ExtraData) (Payload, error) {
			return stubPayload{kind: filetype.Loc}, nil
		},
		func(w *bytecursor.Writer, p Payload, ed *extradata.EncodeExtraData) error { return nil },
	)

	dec, err := vt.Decoder(1)
	require.NoError(err)
	p, err := dec(bytecursor.NewReader(nil), nil)
	require.NoError(err)
	require.Equal(filetype.Loc, p.Kind())

	_, err = vt.Decoder(2)
	require.Error(err)
}

func TestRegistryLookup(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()
	_, err := reg.Lookup(filetype.Loc)
	require.Error(err)
}
