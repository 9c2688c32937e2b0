package status

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	require.Equal(t, "OK", Text(OK))
	require.Equal(t, "Not Found", Text(NotFound))
	require.Equal(t, "I'm a teapot", Text(Teapot))
	require.Empty(t, Text(299))
	require.Empty(t, Text(600))
	require.NotEmpty(t, KnownCodes)

	for _, code := range KnownCodes {
		require.True(t, code.Valid())
	}
}

func TestRules(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.True(t, Code(100).Valid())
		require.True(t, Code(599).Valid())
		require.False(t, Code(99).Valid())
		require.False(t, Code(600).Valid())
	})

	t.Run("body", func(t *testing.T) {
		require.True(t, OK.AllowsBody())
		require.True(t, NotFound.AllowsBody())
		require.False(t, Continue.AllowsBody())
		require.False(t, EarlyHints.AllowsBody())
		require.False(t, NoContent.AllowsBody())
		require.False(t, NotModified.AllowsBody())
	})

	t.Run("framing", func(t *testing.T) {
		require.True(t, OK.AllowsFraming())
		require.True(t, NotModified.AllowsFraming())
		require.False(t, SwitchingProtocols.AllowsFraming())
		require.False(t, NoContent.AllowsFraming())
	})
}

func Benchmark(b *testing.B) {
	code := KnownCodes[rand.IntN(len(KnownCodes))]
	b.ResetTimer()

	for range b.N {
		_ = Text(code)
	}
}
