package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dhamidi/ilc/format"
	"github.com/dhamidi/ilc/lang/codebase"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("ilc.watch")

func newWatchCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "watch <dir>",
		Short:         "Re-check source files whenever they change",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if info, err := os.Stat(dir); err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			} else if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			enc, err := format.NewEncoder(cmd.OutOrStdout(), g.cfg.Output.Format, format.Options{
				Sections: format.Diagnostics,
				Color:    g.cfg.Output.Color,
			})
			if err != nil {
				return err
			}

			cb := codebase.New(dir, codebase.WithExtensions(g.cfg.Watch.Extensions...))
			watcher := codebase.NewFileWatcher(cb, g.cfg.Watch.Interval.Duration)
			watcher.OnChange = func(f *codebase.FileInfo) {
				if err := enc.Encode(f.Report); err != nil {
					watchLog.Errorf("encode %s: %s", f.Path, err)
				}
			}
			watcher.OnRemove = func(path string) {
				watchLog.Infof("%s removed", path)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			watchLog.Infof("watching %s every %s", dir, g.cfg.Watch.Interval)
			watcher.Start()
			<-ctx.Done()
			watcher.Stop()
			return nil
		},
	}

	return cmd
}
