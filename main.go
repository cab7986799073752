package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"nft-wallet-tui/config"
	"nft-wallet-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "0.3.0"

var (
	configPath   string
	contractFlag string
	chainFlag    int64
	askPass      bool
	logFile      string
)

// rootCmd starts the wallet interface
var rootCmd = &cobra.Command{
	Use:   "nft-wallet",
	Short: "Terminal wallet for an NFT collection",
	Long: `nft-wallet connects a local wallet (private key, mnemonic, keystore or
an external signer) and shows an NFT collection's details, transfers tokens
and sends the chain's native currency.

Examples:
  nft-wallet                          # Use ~/.nft-wallet-config.json
  nft-wallet --chain 11155111         # Start on Sepolia
  ETH_RPC_URL=http://127.0.0.1:8545 nft-wallet --chain 31337`,
	SilenceUsage: true,
	RunE:         runWallet,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nft-wallet v%s\n", version)
	},
}

// chainsCmd lists the configured chains
var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List the configured chains",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrCreate(configPath)
		active, _ := cfg.ActiveChain()
		for _, c := range cfg.WalletChains() {
			line := fmt.Sprintf("%-8d %-16s %s", c.ID, c.Name, c.RPCURL)
			if c.ID == active.ID {
				fmt.Println(color.GreenString("● " + line))
				continue
			}
			fmt.Println("  " + line)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "config file")
	rootCmd.Flags().StringVar(&contractFlag, "contract", "", "NFT collection address")
	rootCmd.Flags().Int64Var(&chainFlag, "chain", 0, "chain id to start on")
	rootCmd.Flags().BoolVar(&askPass, "ask-pass", false, "prompt for passphrases missing from the environment")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write wallet layer debug logs to this file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chainsCmd)
}

// -------------------- MAIN --------------------

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func runWallet(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	cfg := config.LoadOrCreate(configPath)
	cfg.OverrideRPC(os.Getenv("ETH_RPC_URL"))
	if contractFlag != "" {
		if !common.IsHexAddress(contractFlag) {
			return fmt.Errorf("invalid contract address %q", contractFlag)
		}
		cfg.NFTContract = contractFlag
	}
	if chainFlag != 0 && !cfg.SetActiveChain(chainFlag) {
		return fmt.Errorf("chain %d is not configured", chainFlag)
	}

	getenv := os.Getenv
	if askPass {
		getenv = promptingEnv(os.Getenv)
	}
	conns, errs := cfg.WalletConnectors(getenv)
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, color.YellowString("Skipping connector: %v", err))
	}

	// stderr belongs to the alt screen, so wallet logs only go to a file
	var logger *log.Logger
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	active, _ := cfg.ActiveChain()
	store := wallet.NewStore(wallet.Config{
		Chains:         cfg.WalletChains(),
		Connectors:     conns,
		InitialChainID: active.ID,
		Logger:         logger,
	})
	defer store.Close()

	m := newModel(store, cfg, configPath)
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// promptingEnv asks on the terminal for passphrase variables that are unset
func promptingEnv(getenv func(string) string) func(string) string {
	return func(name string) string {
		v := getenv(name)
		if v != "" || !strings.Contains(name, "PASS") {
			return v
		}
		fmt.Printf("Enter %s: ", name)
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after password input
		if err != nil {
			return ""
		}
		return string(pass)
	}
}
