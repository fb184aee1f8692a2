package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/dhamidi/ilc/lang/grammar"
	"github.com/dhamidi/ilc/lang/parser"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Inspect the language grammar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarSampleCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar, the built-in one by default",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var g ebnf.Grammar
			var err error
			if len(args) == 0 {
				g, err = grammar.Load()
			} else {
				g, err = loadGrammarFile(args[0])
			}
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification")

	return cmd
}

func newGrammarSampleCmd() *cobra.Command {
	var seed uint64
	var depth int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a random program that the parser accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			src, err := grammar.NewGenerator(g, seed, grammar.WithMaxDepth(depth)).Generate(grammar.Start)
			if err != nil {
				return err
			}
			if err := parser.Parse([]byte(src)); err != nil {
				return fmt.Errorf("generated program with seed %d does not parse: %w", seed, err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), src)
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().IntVar(&depth, "depth", 12, "maximum production nesting")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <production> <text>",
		Short: "Report how much of text a production derives",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			name, text := args[0], args[1]
			if _, ok := g[name]; !ok {
				return fmt.Errorf("unknown production %q", name)
			}
			n := grammar.NewMatcher(g).Match(name, []byte(text))
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%q\n", n, text[:n])
			if n != len(text) {
				return fmt.Errorf("%s matches %d of %d bytes", name, n, len(text))
			}
			return nil
		},
	}
}

func loadGrammarFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ebnf.Parse(filename, f)
}

func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
