package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well known development accounts
const (
	devMnemonic = "test test test test test test test test test test test junk"
	devKey0     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devKey1     = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	devAddr0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	devAddr1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestPrivateKeyConnector(t *testing.T) {
	c := NewPrivateKeyConnector(devKey0)
	assert.Equal(t, PrivateKeyID, c.ID())

	s, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{devAddr0}, s.Accounts())

	tx := types.NewTx(&types.DynamicFeeTx{ChainID: big.NewInt(1337), Gas: 21000, To: &devAddr1, Value: big.NewInt(1)})
	signed, err := s.SignTx(devAddr0, tx, big.NewInt(1337))
	require.NoError(t, err)

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), signed)
	require.NoError(t, err)
	assert.Equal(t, devAddr0, from)

	_, err = s.SignTx(devAddr1, tx, big.NewInt(1337))
	assert.ErrorIs(t, err, ErrUnknownAccount)
	require.NoError(t, s.Close())
}

func TestPrivateKeyConnectorErrors(t *testing.T) {
	for _, key := range []string{"", "0x", "not-hex", "0x1234"} {
		_, err := NewPrivateKeyConnector(key).Connect(context.Background())
		assert.Error(t, err, key)
	}
}

func TestMnemonicConnector(t *testing.T) {
	c := NewMnemonicConnector(devMnemonic, "", 2)
	assert.Equal(t, MnemonicID, c.ID())

	s, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{devAddr0, devAddr1}, s.Accounts())
}

func TestMnemonicConnectorNormalizesSpacing(t *testing.T) {
	s, err := NewMnemonicConnector("  test test test test test\ttest test test test test test   junk ", "", 0).Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{devAddr0}, s.Accounts())
}

func TestMnemonicConnectorRejectsInvalidPhrase(t *testing.T) {
	_, err := NewMnemonicConnector("test test test test test test test test test test test wallet-tui", "", 1).Connect(context.Background())
	assert.Error(t, err)
}

func TestKeystoreConnector(t *testing.T) {
	dir := t.TempDir()
	key, err := crypto.HexToECDSA(devKey0[2:])
	require.NoError(t, err)

	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	_, err = ks.ImportECDSA(key, "hunter2")
	require.NoError(t, err)

	t.Run("unlocks", func(t *testing.T) {
		s, err := NewKeystoreConnector(dir, "hunter2").Connect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []common.Address{devAddr0}, s.Accounts())

		tx := types.NewTx(&types.DynamicFeeTx{ChainID: big.NewInt(1), Gas: 21000, To: &devAddr1})
		signed, err := s.SignTx(devAddr0, tx, big.NewInt(1))
		require.NoError(t, err)
		from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1)), signed)
		require.NoError(t, err)
		assert.Equal(t, devAddr0, from)
		assert.NoError(t, s.Close())
	})

	t.Run("reconnect reuses the keystore", func(t *testing.T) {
		c := NewKeystoreConnector(dir, "hunter2")
		s1, err := c.Connect(context.Background())
		require.NoError(t, err)
		require.NoError(t, s1.Close())

		s2, err := c.Connect(context.Background())
		require.NoError(t, err)
		defer s2.Close()
		assert.Same(t, s1.(*keystoreSession).ks, s2.(*keystoreSession).ks)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := NewKeystoreConnector(dir, "wrong").Connect(context.Background())
		assert.Error(t, err)
	})

	t.Run("empty dir", func(t *testing.T) {
		_, err := NewKeystoreConnector(t.TempDir(), "").Connect(context.Background())
		assert.ErrorIs(t, err, ErrNoAccounts)
	})
}

func TestConnectorUIDsAreUnique(t *testing.T) {
	a := NewPrivateKeyConnector(devKey0)
	b := NewPrivateKeyConnector(devKey0)
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.UID(), b.UID())
}
