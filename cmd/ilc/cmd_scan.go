package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/ilc/format"
	"github.com/dhamidi/ilc/lang"
	"github.com/dhamidi/ilc/lang/parser"
	"github.com/spf13/cobra"
)

func newScanCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:           "scan <file>",
		Short:         "Print the tokens of a source file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.OutOrStdout(), cmd.InOrStdin(), g, args[0])
		},
	}
}

func runScan(w io.Writer, stdin io.Reader, g *globals, path string) error {
	src, err := readSource(path, stdin)
	if err != nil {
		return err
	}

	report := &lang.Report{Path: displayName(path)}
	report.Tokens, report.LexicalErrors = parser.ScanAll(src)

	enc, err := format.NewEncoder(w, g.cfg.Output.Format, format.Options{
		Sections: format.Tokens | format.Diagnostics,
		Color:    g.cfg.Output.Color,
	})
	if err != nil {
		return err
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if n := len(report.LexicalErrors); n > 0 {
		return fmt.Errorf("%s: %d lexical errors", report.Path, n)
	}
	return nil
}
