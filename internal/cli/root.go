package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/graphovl/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graphovl",
	Short: "Graph the action functions of decompiled actors",
	Long: `graphovl reads the C source of a decompiled actor, works out how it
switches between action functions, and draws the resulting state graph
with Graphviz.

Configuration is read from .graphovl/config.yml and GRAPHOVL_* environment
variables.`,
	SilenceUsage: true,
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
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .graphovl/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initLogging() {
	log.SetFlags(0)
	if verbose {
		log.SetFlags(log.Ltime)
	}
}

// loadConfig loads the --config file when given, otherwise the project
// configuration of the working directory.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		log.Printf("Source root: %s, output: %s (%s)", cfg.Source.Root, cfg.Output.Dir, cfg.Output.Format)
	}
	return cfg, nil
}
