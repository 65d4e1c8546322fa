package sealtype

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.Equal(t, "mining", Mining.String())
	require.Equal(t, "staking", Staking.String())
	require.Equal(t, "unknown(0x07)", Type(7).String())
	require.False(t, Type(0).IsValid())
	require.True(t, Staking.IsValid())
}

func TestPeek(t *testing.T) {
	require := require.New(t)

	enc, err := rlp.EncodeToBytes([]interface{}{uint8(Staking), uint64(12), []byte("rest")})
	require.NoError(err)
	got, err := Peek(enc)
	require.NoError(err)
	require.Equal(Staking, got)

	// zero seal byte is encoded as the empty string and is rejected
	enc, err = rlp.EncodeToBytes([]interface{}{uint8(0), uint64(12)})
	require.NoError(err)
	_, err = Peek(enc)
	require.Error(err)

	// not a list
	_, err = Peek([]byte{0x01})
	require.Error(err)

	// nested list as first element
	enc, err = rlp.EncodeToBytes([]interface{}{[]interface{}{uint8(1)}})
	require.NoError(err)
	_, err = Peek(enc)
	require.Error(err)
}
