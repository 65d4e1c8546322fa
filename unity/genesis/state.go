package genesis

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/pkg/errors"

	"github.com/rony4d/go-unity-asset/inter"
)

// networkBalanceKeyLength is the storage key size of the network balance table.
const networkBalanceKeyLength = 16

// emptyCodeHash is the code hash of accounts without code.
var emptyCodeHash = crypto.Keccak256Hash(nil)

// stateAccount is the trie encoding of an account.
type stateAccount struct {
	Nonce       uint64
	Balance     *big.Int
	StorageRoot common.Hash
	CodeHash    common.Hash
}

// stateRoot folds the premined accounts and the network balance table into a
// fresh in-memory secure trie and returns its root.
//
// Process:
//  1. Writes every chain index balance into the storage trie of
//     NetworkBalanceAddress, keyed by the 16-byte big-endian index
//  2. Writes the network balance account with that storage root
//  3. Writes every premined account with empty storage and code
//
// Trie roots do not depend on insertion order; entries are still sorted so
// that a failing write is reported for the same entry on every run.
func stateRoot(premine map[inter.Address]Account, balances map[uint64]*big.Int) (common.Hash, error) {
	db := trie.NewDatabase(rawdb.NewMemoryDatabase())

	storage, err := trie.NewSecure(common.Hash{}, db)
	if err != nil {
		return common.Hash{}, err
	}
	for _, index := range sortedIndexes(balances) {
		value, err := rlp.EncodeToBytes(balances[index])
		if err != nil {
			return common.Hash{}, err
		}
		if err := storage.TryUpdate(networkBalanceKey(index), value); err != nil {
			return common.Hash{}, errors.Wrapf(err, "network balance of chain %d", index)
		}
	}

	state, err := trie.NewSecure(common.Hash{}, db)
	if err != nil {
		return common.Hash{}, err
	}
	network := stateAccount{Balance: new(big.Int), StorageRoot: storage.Hash(), CodeHash: emptyCodeHash}
	if err := putAccount(state, NetworkBalanceAddress, network); err != nil {
		return common.Hash{}, err
	}
	for _, addr := range sortedAddresses(premine) {
		acc := premine[addr]
		err := putAccount(state, addr, stateAccount{
			Nonce:       acc.Nonce,
			Balance:     acc.Balance,
			StorageRoot: types.EmptyRootHash,
			CodeHash:    emptyCodeHash,
		})
		if err != nil {
			return common.Hash{}, err
		}
	}
	return state.Hash(), nil
}

func putAccount(state *trie.SecureTrie, addr inter.Address, acc stateAccount) error {
	enc, err := rlp.EncodeToBytes(&acc)
	if err != nil {
		return err
	}
	return errors.Wrapf(state.TryUpdate(addr[:], enc), "account %s", addr)
}

func networkBalanceKey(index uint64) []byte {
	key := make([]byte, networkBalanceKeyLength)
	copy(key[networkBalanceKeyLength-8:], bigendian.Uint64ToBytes(index))
	return key
}

func sortedIndexes(m map[uint64]*big.Int) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedAddresses(m map[inter.Address]Account) []inter.Address {
	keys := make([]inter.Address, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })
	return keys
}
