package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

func newCodec(t *testing.T) *FernetCodec {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	codec, err := NewFernetCodec(key)
	require.NoError(t, err)
	return codec
}

func TestFernetCodec_RoundTrip(t *testing.T) {
	codec := newCodec(t)

	for _, id := range []int64{1, 42, 1 << 40} {
		tok, err := codec.Encrypt(id)
		require.NoError(t, err)
		assert.NotContains(t, tok, "+")
		assert.NotContains(t, tok, "/")

		got, err := codec.Decrypt(tok)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestFernetCodec_NonDeterministic(t *testing.T) {
	codec := newCodec(t)

	a, err := codec.Encrypt(7)
	require.NoError(t, err)
	b, err := codec.Encrypt(7)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFernetCodec_RejectsTamperedTokens(t *testing.T) {
	codec := newCodec(t)
	tok, err := codec.Encrypt(7)
	require.NoError(t, err)

	// Flip a character in the middle of the ciphertext.
	mid := len(tok) / 2
	replacement := "A"
	if tok[mid] == 'A' {
		replacement = "B"
	}
	tampered := tok[:mid] + replacement + tok[mid+1:]

	_, err = codec.Decrypt(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = codec.Decrypt("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = newCodec(t).Decrypt(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "foreign key must not decrypt")
}

func TestNewFernetCodec_InvalidKey(t *testing.T) {
	_, err := NewFernetCodec("short")
	assert.Error(t, err)

	_, err = NewFernetCodec(strings.Repeat("A", 43)+"=")
	assert.NoError(t, err)
}
