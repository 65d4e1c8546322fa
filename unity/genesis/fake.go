package genesis

import (
	"crypto/ed25519"
	"math/big"
	"math/rand"

	"github.com/rony4d/go-unity-asset/inter"
	"github.com/rony4d/go-unity-asset/inter/validatorpk"
	"github.com/rony4d/go-unity-asset/unity"
)

// FakeKey generates a deterministic Ed25519 key for testing purposes. The
// same n always yields the same key.
//
// Example:
//
//	key0 := FakeKey(0)
//	addr0 := FakeAddress(0)
func FakeKey(n int) ed25519.PrivateKey {
	reader := rand.New(rand.NewSource(int64(n)))
	_, priv, err := ed25519.GenerateKey(reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// FakeAddress is the account address of FakeKey(n).
func FakeAddress(n int) inter.Address {
	return inter.PubKeyToAddress(validatorpk.FromPrivateKey(FakeKey(n)))
}

// FakeGenesis builds a fakenet genesis that funds the first accounts fake
// addresses with balance each.
func FakeGenesis(accounts int, balance *big.Int) *Block {
	b := NewBuilderFromRules(unity.FakeNetRules())
	for i := 0; i < accounts; i++ {
		b.AddPremined(FakeAddress(i), balance)
	}
	return b.MustBuild()
}
