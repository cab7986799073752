package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nft-wallet-tui/chains"
	"nft-wallet-tui/wallet"

	"github.com/samber/lo"
)

// FileName is the config file created in the home directory
const FileName = ".nft-wallet-config.json"

// DefaultNFTContract is the collection shown by the read panel
const DefaultNFTContract = "0x930558574Ad29f697407c57506A427C85243247E"

// Config represents the application configuration
type Config struct {
	Chains        []ChainEntry     `json:"chains"`
	Connectors    []ConnectorEntry `json:"connectors"`
	NFTContract   string           `json:"nft_contract"`
	LastConnector string           `json:"last_connector,omitempty"`
	Logger        bool             `json:"logger"`
}

// ChainEntry represents a chain and its RPC endpoint
type ChainEntry struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RPCURL string `json:"rpc_url"`
	Active bool   `json:"active"`
}

// ConnectorEntry represents a wallet connector. Secrets are never stored,
// only the names of the environment variables holding them.
type ConnectorEntry struct {
	Type        string `json:"type"`
	KeyEnv      string `json:"key_env,omitempty"`
	MnemonicEnv string `json:"mnemonic_env,omitempty"`
	PasswordEnv string `json:"password_env,omitempty"`
	KeystoreDir string `json:"keystore_dir,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`
	Accounts    int    `json:"accounts,omitempty"`
}

// DefaultPath returns the config location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, FileName)
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Chains: []ChainEntry{
			{ID: chains.Mainnet.ID, Name: chains.Mainnet.Name, RPCURL: chains.Mainnet.RPCURL, Active: true},
			{ID: chains.Sepolia.ID, Name: chains.Sepolia.Name, RPCURL: chains.Sepolia.RPCURL},
			{ID: chains.Anvil.ID, Name: chains.Anvil.Name, RPCURL: chains.Anvil.RPCURL},
		},
		Connectors: []ConnectorEntry{
			{Type: wallet.PrivateKeyID, KeyEnv: "WALLET_PRIVATE_KEY"},
			{Type: wallet.MnemonicID, MnemonicEnv: "WALLET_MNEMONIC", PasswordEnv: "WALLET_MNEMONIC_PASSPHRASE", Accounts: 3},
			{Type: wallet.KeystoreID, KeystoreDir: "~/.ethereum/keystore", PasswordEnv: "WALLET_KEYSTORE_PASSWORD"},
			{Type: wallet.ExternalSignerID, Endpoint: "~/.clef/clef.ipc"},
		},
		NFTContract: DefaultNFTContract,
		Logger:      false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	// fill sections older files lack
	if len(cfg.Chains) == 0 {
		cfg.Chains = DefaultConfig().Chains
	}
	if cfg.NFTContract == "" {
		cfg.NFTContract = DefaultNFTContract
	}
	return cfg
}

// ActiveChain returns the chain marked active, or the first one
func (c Config) ActiveChain() (ChainEntry, bool) {
	if e, ok := lo.Find(c.Chains, func(e ChainEntry) bool { return e.Active }); ok {
		return e, true
	}
	return lo.First(c.Chains)
}

// SetActiveChain marks id as the only active chain
func (c *Config) SetActiveChain(id int64) bool {
	found := false
	for i := range c.Chains {
		c.Chains[i].Active = c.Chains[i].ID == id
		found = found || c.Chains[i].Active
	}
	return found
}

// OverrideRPC replaces the active chain's endpoint, used for ETH_RPC_URL
func (c *Config) OverrideRPC(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	if len(c.Chains) == 0 {
		c.Chains = []ChainEntry{{ID: chains.Mainnet.ID, Name: "Default", RPCURL: url, Active: true}}
		return
	}
	active, _ := c.ActiveChain()
	for i := range c.Chains {
		if c.Chains[i].ID == active.ID {
			c.Chains[i].RPCURL = url
		}
	}
}

// WalletChains converts the entries for the wallet layer. Currency and
// explorer come from the built-in chain with the same id.
func (c Config) WalletChains() []chains.Chain {
	return lo.Map(c.Chains, func(e ChainEntry, _ int) chains.Chain {
		ch, ok := chains.Lookup(e.ID)
		if !ok {
			ch = chains.Chain{ID: e.ID, Currency: chains.Mainnet.Currency}
		}
		if e.Name != "" {
			ch.Name = e.Name
		}
		if e.RPCURL != "" {
			ch.RPCURL = e.RPCURL
		}
		return ch
	})
}

// Connector builds the wallet connector for the entry, reading secrets
// through getenv
func (e ConnectorEntry) Connector(getenv func(string) string) (wallet.Connector, error) {
	env := func(name string) string {
		if name == "" {
			return ""
		}
		return getenv(name)
	}

	switch e.Type {
	case wallet.PrivateKeyID:
		return wallet.NewPrivateKeyConnector(env(e.KeyEnv)), nil
	case wallet.MnemonicID:
		return wallet.NewMnemonicConnector(env(e.MnemonicEnv), env(e.PasswordEnv), e.Accounts), nil
	case wallet.KeystoreID:
		return wallet.NewKeystoreConnector(e.KeystoreDir, env(e.PasswordEnv)), nil
	case wallet.ExternalSignerID:
		return wallet.NewExternalSignerConnector(e.Endpoint), nil
	}
	return nil, fmt.Errorf("unknown connector type %q", e.Type)
}

// WalletConnectors builds every connector in config order and reports the
// entries that could not be built
func (c Config) WalletConnectors(getenv func(string) string) ([]wallet.Connector, []error) {
	var (
		out  []wallet.Connector
		errs []error
	)
	for _, e := range c.Connectors {
		conn, err := e.Connector(getenv)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, conn)
	}
	return out, errs
}
