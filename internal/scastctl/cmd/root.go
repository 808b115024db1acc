// Package cmd implements the slidecast CLI commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/internal/scastctl/client"
	"github.com/slidecast/slidecast/internal/scastctl/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scastctl",
	Short: "Slidecast player control tool",
	Long: `scastctl is a command line tool for controlling a running slidecast
player daemon: pairing it with a business account, checking its playback
status, and unpairing it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scastctl/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "player daemon address")

	rootCmd.AddCommand(newPairCmd())
	rootCmd.AddCommand(newUnpairCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	if server, _ := rootCmd.PersistentFlags().GetString("server"); server != "" {
		cfg.Server = server
	}
}

// newClient builds a control API client from the effective configuration.
func newClient() (*client.Client, error) {
	return client.New(cfg.Server)
}
