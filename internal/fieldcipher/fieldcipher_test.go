package fieldcipher

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key := []byte("my_secret_key")
	nonce := []byte("5")

	cases := []string{
		"hello",
		"a",
		"hello, world",
		"value with 'quotes' and \"doubles\"",
		"çok güzel ünïcödé ☃ 日本語",
		"line\nbreaks\tand\ttabs",
		"trailing space ",
	}
	for _, plaintext := range cases {
		sealed := Seal(plaintext, key, nonce)
		require.NotEmpty(t, sealed)
		assert.NotEqual(t, plaintext, sealed)

		opened, err := Open(sealed, key, nonce)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	}
}

func TestSealEmptyBypass(t *testing.T) {
	key := []byte("k")
	nonce := []byte("n")

	assert.Equal(t, "", Seal("", key, nonce))

	opened, err := Open("", key, nonce)
	require.NoError(t, err)
	assert.Equal(t, "", opened)
}

func TestSealDeterministic(t *testing.T) {
	key := []byte("key")
	nonce := []byte("3")

	assert.Equal(t, Seal("hello", key, nonce), Seal("hello", key, nonce))
}

func TestSealDistinctNonces(t *testing.T) {
	// The per-record nonce is what keeps two records' ciphertexts from
	// sharing a keystream.
	key := []byte("key")

	a := Seal("same plaintext", key, []byte("1"))
	b := Seal("same plaintext", key, []byte("2"))
	assert.NotEqual(t, a, b)
}

func TestSealOutputIsBase64(t *testing.T) {
	sealed := Seal("hello", []byte("k"), []byte("n"))
	_, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
}

func TestOpenMalformedBase64(t *testing.T) {
	_, err := Open("not base64!!!", []byte("k"), []byte("n"))
	require.Error(t, err)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "base64", de.Reason)
	assert.Error(t, de.Unwrap())
}

func TestOpenTruncatedCiphertext(t *testing.T) {
	key := []byte("k")
	nonce := []byte("n")

	sealed := Seal("a reasonably long plaintext value", key, nonce)
	truncated := sealed[:len(sealed)-3]

	opened, err := Open(truncated, key, nonce)
	if err == nil {
		// Truncation can still decode to valid base64 and valid UTF-8;
		// when it does, the result must at least differ from the original.
		assert.NotEqual(t, "a reasonably long plaintext value", opened)
	} else {
		var de *DecodeError
		assert.ErrorAs(t, err, &de)
	}
}

func TestOpenWrongNonceInvalidUTF8(t *testing.T) {
	key := []byte("k")

	// Sealed under nonce "1"; opening under nonce "2" XORs with the wrong
	// keystream. With multibyte plaintext the result is essentially never
	// valid UTF-8; either error or garbage is acceptable, silence about the
	// mismatch is the documented limitation.
	sealed := Seal("日本語テキスト", key, []byte("1"))
	opened, err := Open(sealed, key, []byte("2"))
	if err == nil {
		assert.NotEqual(t, "日本語テキスト", opened)
	} else {
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "utf8", de.Reason)
	}
}

func TestMarkerIsStable(t *testing.T) {
	// Rendered in listings; changing it would alter the visible contract.
	assert.Equal(t, "<decryption-error>", Marker)
}
