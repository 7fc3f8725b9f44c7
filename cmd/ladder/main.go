// Command ladder renders juggling ladder diagrams from pattern files.
//
//	ladder render -p pattern.yaml -o diagram.png
//	ladder pick -p pattern.yaml --x 120 --y 80
//	ladder watch -p pattern.yaml -o diagram.png
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/npillmayer/ladder/config"
	"github.com/npillmayer/ladder/diagram"
	"github.com/npillmayer/ladder/internal/patternfile"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

var traceKeys = []string{
	"ladder", "timeline", "layout", "pick", "rcache",
	"ladder.render", "diagram", "config", "patternfile",
}

type options struct {
	pattern    string
	output     string
	configFile string
	width      int
	height     int
	time       float64
	x, y       int
	tolerance  int
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "ladder",
		Short:         "Render juggling ladder diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				for _, k := range traceKeys {
					tracing.Select(k).SetTraceLevel(tracing.LevelDebug)
				}
				gg.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug tracing")
	root.PersistentFlags().StringVarP(&opts.pattern, "pattern", "p", "", "Pattern file (YAML)")
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Configuration file (YAML)")
	root.PersistentFlags().IntVar(&opts.width, "width", 400, "Diagram width in pixels")
	root.PersistentFlags().IntVar(&opts.height, "height", 600, "Diagram height in pixels")
	root.MarkPersistentFlagRequired("pattern")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a pattern to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.session()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("time") {
				s.SetTime(opts.time)
			}
			if err := renderPNG(s, opts.output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", opts.output, opts.width, opts.height)
			return nil
		},
	}
	renderCmd.Flags().StringVarP(&opts.output, "output", "o", "ladder.png", "Output PNG file")
	renderCmd.Flags().Float64Var(&opts.time, "time", 0, "Simulation time of the tracker")

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Report the event and path at a pixel",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := opts.session()
			if err != nil {
				return err
			}
			tol := cfg.PathSlop
			if cmd.Flags().Changed("tolerance") {
				tol = opts.tolerance
			}
			return printPick(cmd.OutOrStdout(), s, opts.x, opts.y, tol)
		},
	}
	pickCmd.Flags().IntVar(&opts.x, "x", 0, "Pixel column")
	pickCmd.Flags().IntVar(&opts.y, "y", 0, "Pixel row")
	pickCmd.Flags().IntVar(&opts.tolerance, "tolerance", diagram.DefaultPathSlop, "Path picking tolerance in pixels")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a pattern whenever its file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
	watchCmd.Flags().StringVarP(&opts.output, "output", "o", "ladder.png", "Output PNG file")

	root.AddCommand(renderCmd, pickCmd, watchCmd)
	return root
}

// session loads configuration and pattern and lays out the diagram.
func (o *options) session() (*diagram.Session, *config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	tl, err := patternfile.Load(o.pattern)
	if err != nil {
		return nil, nil, err
	}
	sopts := append(cfg.SessionOptions(), diagram.WithSize(o.width, o.height))
	return diagram.New(tl, sopts...), cfg, nil
}

func renderPNG(s *diagram.Session, path string) error {
	w, h := s.Size()
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if _, err := s.Frame(dc); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func printPick(out io.Writer, s *diagram.Session, x, y, tol int) error {
	tl := s.Timeline()
	if m, ok := s.PickEvent(x, y); ok {
		fmt.Fprintf(out, "%s: %s\n", m, tl.Event(m.Event))
	} else {
		fmt.Fprintln(out, "event: none")
	}
	if seg, ok := s.PickPath(x, y, tol); ok {
		ts, te := tl.LinkTimes(tl.Links()[seg.Link])
		fmt.Fprintf(out, "path %d: %s from t=%g to t=%g\n", seg.Path, seg.Type, ts, te)
	} else {
		fmt.Fprintln(out, "path: none")
	}
	return nil
}
