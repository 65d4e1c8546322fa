package inter

import (
	"bytes"
	"crypto/ed25519"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/rony4d/go-unity-asset/inter/validatorpk"
)

// fakeTxs returns n legacy transactions carrying payload as call data.
func fakeTxs(n int, payload []byte) types.Transactions {
	txs := make(types.Transactions, 0, n)
	to := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	for i := 0; i < n; i++ {
		txs = append(txs, types.NewTx(&types.LegacyTx{
			Nonce:    uint64(i),
			GasPrice: big.NewInt(1),
			Gas:      21000,
			To:       &to,
			Value:    big.NewInt(int64(i + 1)),
			Data:     payload,
			V:        big.NewInt(27),
			R:        big.NewInt(1),
			S:        big.NewInt(1),
		}))
	}
	return txs
}

// fakeMiningBuilder returns a builder with every shared field populated.
func fakeMiningBuilder() *MiningHeaderBuilder {
	var bloom types.Bloom
	bloom[0], bloom[255] = 0x80, 0x01
	return NewMiningHeaderBuilder().
		Number(42).
		ParentHash(common.HexToHash("0x0101")).
		Coinbase(HexToAddress("0xc0ffee")).
		StateRoot(common.HexToHash("0x0202")).
		ReceiptTrieRoot(common.HexToHash("0x0303")).
		LogsBloom(bloom).
		Difficulty(big.NewInt(16)).
		ExtraData([]byte("unity")).
		EnergyConsumed(21000).
		EnergyLimit(15000000).
		Timestamp(1600000000).
		Nonce(Nonce{0x07}).
		Solution(bytes.Repeat([]byte{0x5a}, SolutionLength))
}

func fakeMiningHeader() *MiningHeader {
	return fakeMiningBuilder().Build()
}

// fakeStakingBuilder returns a builder with every field populated and an
// unsigned, all-zero seal.
func fakeStakingBuilder() *StakingHeaderBuilder {
	return NewStakingHeaderBuilder().
		Number(43).
		ParentHash(common.HexToHash("0x0101")).
		Coinbase(HexToAddress("0xbeef")).
		StateRoot(common.HexToHash("0x0202")).
		Difficulty(big.NewInt(1000)).
		EnergyLimit(15000000).
		Timestamp(1600000010).
		SeedOrProof(make([]byte, SeedLength)).
		Signature(Signature{}).
		SigningPublicKey(validatorpk.PubKey{})
}

func fakeStakingHeader() *StakingHeader {
	h, err := fakeStakingBuilder().Build()
	if err != nil {
		panic(err)
	}
	return h
}

func fakeSigner() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x42}, ed25519.SeedSize))
}
