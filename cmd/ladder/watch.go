package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/npillmayer/ladder/internal/patternfile"
	"github.com/spf13/cobra"
)

// runWatch renders once, then again after every change of the pattern file.
// A pattern which fails to load keeps the previous diagram.
func runWatch(cmd *cobra.Command, opts *options) error {
	s, _, err := opts.session()
	if err != nil {
		return err
	}
	if err := renderPNG(s, opts.output); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s, watching %s\n", opts.output, opts.pattern)

	w, err := patternfile.NewWatcher(opts.pattern)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			tl, err := patternfile.Load(opts.pattern)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
				continue
			}
			s.Replace(tl)
			if err := renderPNG(s, opts.output); err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", opts.output)
		}
	}
}
