// Tests for the staking signing key: parsing, hex/JSON forms and signature
// verification against keys derived from a fixed seed.
package validatorpk

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x42}, ed25519.SeedSize))
}

// TestFromString verifies hex parsing with and without the 0x prefix and the
// exact-length rule.
func TestFromString(t *testing.T) {
	require := require.New(t)

	hex := "2152f8d19b791d24453242e15f2eab6cb7cffa7b6a5ed30097960e069881db12"
	exp, err := FromBytes(bytes.Repeat([]byte{0}, Size))
	require.NoError(err)
	require.True(exp.Empty())

	got, err := FromString(hex)
	require.NoError(err)
	got2, err := FromString("0x" + hex)
	require.NoError(err)
	require.Equal(got, got2)
	require.False(got.Empty())
	require.Equal("0x"+hex, got.String())

	// Case: too short, too long, empty, garbage
	_, err = FromString(hex[2:])
	require.Error(err)
	_, err = FromString(hex + "00")
	require.Error(err)
	_, err = FromString("")
	require.Error(err)
	_, err = FromString("-")
	require.Error(err)
}

// TestBytesIsCopy makes sure callers cannot mutate a key through Bytes.
func TestBytesIsCopy(t *testing.T) {
	pk := FromPrivateKey(testKey())
	b := pk.Bytes()
	b[0] ^= 0xff
	require.NotEqual(t, b[0], pk[0])
}

// TestVerify signs a message and checks verification results.
func TestVerify(t *testing.T) {
	require := require.New(t)

	priv := testKey()
	pk := FromPrivateKey(priv)
	msg := []byte("mine hash")
	sig := ed25519.Sign(priv, msg)

	require.True(pk.Verify(msg, sig))
	require.False(pk.Verify([]byte("other"), sig))
	require.False(pk.Verify(msg, sig[:10]))
	require.False(PubKey{}.Verify(msg, sig))
}

// TestMarshalUnmarshal round-trips the key through JSON text encoding.
func TestMarshalUnmarshal(t *testing.T) {
	require := require.New(t)

	original := FromPrivateKey(testKey())
	data, err := json.Marshal(original)
	require.NoError(err)
	require.Equal(`"`+original.String()+`"`, string(data))

	var decoded PubKey
	require.NoError(json.Unmarshal(data, &decoded))
	require.Equal(original, decoded)
}
