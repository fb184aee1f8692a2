package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/ilc/format"
	"github.com/dhamidi/ilc/lang"
	"github.com/dhamidi/ilc/lang/codebase"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var checkLog = commonlog.GetLogger("ilc.check")

func newCheckCmd(g *globals) *cobra.Command {
	var trace, symbols bool

	cmd := &cobra.Command{
		Use:   "check <file|dir|->...",
		Short: "Check source files for lexical, syntax and declaration errors",
		Long: `Check scans and parses every given file. Directories are searched
recursively for source files; "-" reads standard input. The command fails
when any file has errors.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), cmd.InOrStdin(), g, args, trace, symbols)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print the productions entered by the parser")
	cmd.Flags().BoolVar(&symbols, "symbols", false, "list declared symbols with their scope depth")

	return cmd
}

func runCheck(w io.Writer, stdin io.Reader, g *globals, args []string, trace, symbols bool) error {
	sections := format.Diagnostics
	if trace {
		sections |= format.Trace
	}
	if symbols {
		sections |= format.Symbols
	}
	enc, err := format.NewEncoder(w, g.cfg.Output.Format, format.Options{
		Sections: sections,
		Color:    g.cfg.Output.Color,
	})
	if err != nil {
		return err
	}

	total, failed := 0, 0
	for _, arg := range args {
		reports, err := checkPath(arg, stdin, g, trace)
		if err != nil {
			return err
		}
		for _, report := range reports {
			total++
			if !report.OK() {
				failed++
			}
			checkLog.Debugf("%s: %d tokens, %d declarations", report.Path, len(report.Tokens), len(report.Declarations))
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files have errors", failed, total)
	}
	return nil
}

func checkPath(path string, stdin io.Reader, g *globals, trace bool) ([]*lang.Report, error) {
	if path != "-" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			return checkDir(path, g, trace)
		}
	}

	src, err := readSource(path, stdin)
	if err != nil {
		return nil, err
	}
	return []*lang.Report{lang.Check(src, lang.Options{Path: displayName(path), Trace: trace})}, nil
}

func checkDir(dir string, g *globals, trace bool) ([]*lang.Report, error) {
	opts := []codebase.Option{codebase.WithExtensions(g.cfg.Watch.Extensions...)}
	if trace {
		opts = append(opts, codebase.WithTrace())
	}
	cb := codebase.New(dir, opts...)
	if err := cb.ScanAll(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var reports []*lang.Report
	for _, f := range cb.Files() {
		reports = append(reports, f.Report)
	}
	if len(reports) == 0 {
		checkLog.Warningf("no source files under %s", dir)
	}
	return reports, nil
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return src, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
