package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/external"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/tyler-smith/go-bip39"
)

// Connector ids
const (
	PrivateKeyID     = "privateKey"
	MnemonicID       = "mnemonic"
	KeystoreID       = "keystore"
	ExternalSignerID = "externalSigner"
)

// Connector is a wallet provider the user can connect with
type Connector interface {
	// ID names the kind of provider. Several connectors may share an id.
	ID() string
	// UID is unique per connector instance.
	UID() string
	Name() string
	Connect(ctx context.Context) (Session, error)
}

// Session is an open connection to a provider holding keys
type Session interface {
	Accounts() []common.Address
	SignTx(account common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
	Close() error
}

// ErrUnknownAccount is returned when asked to sign for an address the
// session does not hold
var ErrUnknownAccount = errors.New("account not held by connector")

type base struct {
	id   string
	uid  string
	name string
}

func newBase(id, name string) base {
	return base{id: id, uid: uuid.NewString(), name: name}
}

func (b base) ID() string   { return b.id }
func (b base) UID() string  { return b.uid }
func (b base) Name() string { return b.name }

// -------------------- RAW KEYS --------------------

// keySession signs with in-memory secp256k1 keys
type keySession struct {
	keys  map[common.Address]*ecdsa.PrivateKey
	order []common.Address
}

func newKeySession(keys ...*ecdsa.PrivateKey) *keySession {
	s := &keySession{keys: make(map[common.Address]*ecdsa.PrivateKey, len(keys))}
	for _, k := range keys {
		addr := crypto.PubkeyToAddress(k.PublicKey)
		if _, dup := s.keys[addr]; dup {
			continue
		}
		s.keys[addr] = k
		s.order = append(s.order, addr)
	}
	return s
}

func (s *keySession) Accounts() []common.Address {
	return append([]common.Address(nil), s.order...)
}

func (s *keySession) SignTx(account common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	key, ok := s.keys[account]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, account.Hex())
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

func (s *keySession) Close() error {
	clear(s.keys)
	s.order = nil
	return nil
}

// PrivateKeyConnector connects with a single hex private key
type PrivateKeyConnector struct {
	base
	hexKey string
}

// NewPrivateKeyConnector creates a connector for a hex encoded private key
func NewPrivateKeyConnector(hexKey string) *PrivateKeyConnector {
	return &PrivateKeyConnector{base: newBase(PrivateKeyID, "Private Key"), hexKey: hexKey}
}

func (c *PrivateKeyConnector) Connect(_ context.Context) (Session, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(c.hexKey), "0x")
	if raw == "" {
		return nil, errors.New("private key: no key configured")
	}
	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	return newKeySession(key), nil
}

// MnemonicConnector derives accounts from a BIP-39 phrase along
// m/44'/60'/0'/0/i
type MnemonicConnector struct {
	base
	mnemonic   string
	passphrase string
	count      int
}

// NewMnemonicConnector creates a connector deriving count accounts
func NewMnemonicConnector(mnemonic, passphrase string, count int) *MnemonicConnector {
	return &MnemonicConnector{
		base:       newBase(MnemonicID, "Mnemonic"),
		mnemonic:   mnemonic,
		passphrase: passphrase,
		count:      max(1, count),
	}
}

func (c *MnemonicConnector) Connect(_ context.Context) (Session, error) {
	phrase := strings.Join(strings.Fields(c.mnemonic), " ")
	seed, err := bip39.NewSeedWithErrorChecking(phrase, c.passphrase)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: %w", err)
	}

	keys := make([]*ecdsa.PrivateKey, 0, c.count)
	for i := 0; i < c.count; i++ {
		key, err := deriveKey(seed, uint32(i))
		if err != nil {
			return nil, fmt.Errorf("mnemonic: account %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return newKeySession(keys...), nil
}

func deriveKey(seed []byte, index uint32) (*ecdsa.PrivateKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}

	path := append(accounts.DerivationPath{}, accounts.DefaultRootDerivationPath...)
	path = append(path, index)

	key := master
	for _, n := range path {
		if key, err = key.Derive(n); err != nil {
			return nil, err
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return priv.ToECDSA(), nil
}

// -------------------- KEYSTORE --------------------

// KeystoreConnector unlocks every account of a go-ethereum keystore directory
type KeystoreConnector struct {
	base
	dir        string
	passphrase string

	once sync.Once
	ks   *keystore.KeyStore // opened on first connect, it watches dir
}

// NewKeystoreConnector creates a connector for an encrypted keystore directory
func NewKeystoreConnector(dir, passphrase string) *KeystoreConnector {
	return &KeystoreConnector{base: newBase(KeystoreID, "Keystore"), dir: expandHome(dir), passphrase: passphrase}
}

func (c *KeystoreConnector) Connect(_ context.Context) (Session, error) {
	if _, err := os.Stat(c.dir); err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}

	c.once.Do(func() {
		c.ks = keystore.NewKeyStore(c.dir, keystore.StandardScryptN, keystore.StandardScryptP)
	})
	ks := c.ks
	accs := ks.Accounts()
	if len(accs) == 0 {
		return nil, fmt.Errorf("keystore %s: %w", c.dir, ErrNoAccounts)
	}

	for _, a := range accs {
		if err := ks.Unlock(a, c.passphrase); err != nil {
			return nil, fmt.Errorf("keystore: unlock %s: %w", a.Address.Hex(), err)
		}
	}
	return &keystoreSession{ks: ks, accounts: accs}, nil
}

type keystoreSession struct {
	ks       *keystore.KeyStore
	accounts []accounts.Account
}

func (s *keystoreSession) Accounts() []common.Address {
	return lo.Map(s.accounts, func(a accounts.Account, _ int) common.Address { return a.Address })
}

func (s *keystoreSession) SignTx(account common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return s.ks.SignTx(accounts.Account{Address: account}, tx, chainID)
}

func (s *keystoreSession) Close() error {
	var errs []error
	for _, a := range s.accounts {
		errs = append(errs, s.ks.Lock(a.Address))
	}
	return errors.Join(errs...)
}

// -------------------- EXTERNAL SIGNER --------------------

// ExternalSignerConnector talks to a clef compatible signer over IPC or HTTP
type ExternalSignerConnector struct {
	base
	endpoint string
}

// NewExternalSignerConnector creates a connector for a signer endpoint
func NewExternalSignerConnector(endpoint string) *ExternalSignerConnector {
	return &ExternalSignerConnector{base: newBase(ExternalSignerID, "External Signer"), endpoint: expandHome(endpoint)}
}

func (c *ExternalSignerConnector) Connect(_ context.Context) (Session, error) {
	signer, err := external.NewExternalSigner(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("external signer %s: %w", c.endpoint, err)
	}
	accs := signer.Accounts()
	if len(accs) == 0 {
		_ = signer.Close()
		return nil, fmt.Errorf("external signer %s: %w", c.endpoint, ErrNoAccounts)
	}
	return &externalSession{signer: signer, accounts: accs}, nil
}

type externalSession struct {
	signer   *external.ExternalSigner
	accounts []accounts.Account
}

func (s *externalSession) Accounts() []common.Address {
	return lo.Map(s.accounts, func(a accounts.Account, _ int) common.Address { return a.Address })
}

func (s *externalSession) SignTx(account common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return s.signer.SignTx(accounts.Account{Address: account}, tx, chainID)
}

func (s *externalSession) Close() error {
	return s.signer.Close()
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + p[1:]
		}
	}
	return p
}
