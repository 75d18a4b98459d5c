package pack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/filetype"
)

// An uncompressed, compressible file read eagerly (WithLazyLoad(false)) must
// not pick up compression it never had on save — otherwise a second save
// produces different bytes than the first for a supported read
// configuration.
func TestWasCompressedSurvivesEagerRead(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	_ = p.Insert(NewRawRecord("movies/intro.bik", filetype.Video, []byte("movie-bytes")))

	first, err := p.Bytes(WithTestMode(true))
	require.NoError(err)

	reopened, err := Open(first, WithLazyLoad(false))
	require.NoError(err)

	rec, ok := reopened.File("movies/intro.bik")
	require.True(ok)
	require.False(reopened.wasCompressed(rec))

	second, err := reopened.Bytes(WithTestMode(true))
	require.NoError(err)
	require.Equal(first, second)
}

func TestWasCompressedSurvivesLazyRead(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	_ = p.Insert(NewRawRecord("movies/intro.bik", filetype.Video, []byte("movie-bytes")))

	first, err := p.Bytes(WithTestMode(true))
	require.NoError(err)

	reopened, err := Open(first, WithLazyLoad(true), WithDiskFilePath("intro.pack"))
	require.NoError(err)

	rec, ok := reopened.File("movies/intro.bik")
	require.True(ok)
	require.True(rec.IsLazy())
	require.False(reopened.wasCompressed(rec))

	second, err := reopened.Bytes(WithTestMode(true))
	require.NoError(err)
	require.Equal(first, second)
}
