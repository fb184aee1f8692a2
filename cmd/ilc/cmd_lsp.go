package main

import (
	"github.com/dhamidi/ilc/lang/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, codebase.WithExtensions(g.cfg.Watch.Extensions...))
			return server.RunStdio()
		},
	}
}
