package sound

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCatalog ensures every built-in sound decodes to a RIFF/WAVE payload.
func TestCatalog(t *testing.T) {
	t.Parallel()

	require.Len(t, Catalog, 4)
	require.Equal(t, Sunrise, Default)

	for _, s := range Catalog {
		mediaType, payload, err := Decode(s.URI)
		require.NoError(t, err, s.Name)
		require.Equal(t, "audio/wav", mediaType)
		require.Equal(t, "RIFF", string(payload[:4]), s.Name)
		require.Equal(t, ".wav", Extension(mediaType))
	}
}

// TestLookup resolves names case-insensitively and passes through other references.
func TestLookup(t *testing.T) {
	t.Parallel()

	require.Equal(t, ZenBells, Lookup("zen bells").URI)
	require.Equal(t, "file:///tmp/beep.wav", Lookup("file:///tmp/beep.wav").URI)
	require.Equal(t, "Uplift", NameOf(Uplift))
	require.Equal(t, "custom", NameOf("file:///tmp/beep.wav"))
}

// TestDecode covers plain and malformed data URIs.
func TestDecode(t *testing.T) {
	t.Parallel()

	mediaType, payload, err := Decode("data:,hello%20world")
	require.NoError(t, err)
	require.Equal(t, "text/plain", mediaType)
	require.Equal(t, "hello world", string(payload))

	_, _, err = Decode("https://example.com/a.wav")
	require.ErrorIs(t, err, ErrNotDataURI)

	_, _, err = Decode("data:audio/wav;base64")
	require.ErrorIs(t, err, ErrNotDataURI)

	_, _, err = Decode("data:audio/wav;base64,*$%")
	require.Error(t, err)

	// A payload whose length leaves a single dangling character is corrupt.
	_, _, err = Decode("data:audio/wav;base64,UklGRg==A")
	require.Error(t, err)

	_, _, err = Decode("data:audio/wav;base64,UklGRgA")
	require.Error(t, err)

	mediaType, payload, err = Decode("data:audio/wav;base64,UklGRg==")
	require.NoError(t, err)
	require.Equal(t, "audio/wav", mediaType)
	require.Equal(t, "RIFF", string(payload))
	require.Equal(t, ".bin", Extension("application/octet-stream"))
}
