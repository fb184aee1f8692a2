package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/ilc/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// globals carries the persistent flags and the configuration they resolve to.
type globals struct {
	configPath string
	verbosity  int
	format     string
	color      bool

	cfg *config.Config
}

func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = g.format
	}
	if cmd.Flags().Changed("color") {
		cfg.Output.Color = g.color
	}
	if g.verbosity > 0 {
		cfg.Log.Verbosity = g.verbosity
	}

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)

	g.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "ilc",
		Short:   "Lexer, parser and scope checker for il programs",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "configuration file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVarP(&g.format, "format", "f", "line", "output format: line, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&g.color, "color", false, "style line output for a terminal")

	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
