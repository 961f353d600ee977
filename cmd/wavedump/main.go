// Command wavedump prints the points of every line for one frame as CSV.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"wavefield/wavekit/wave"

	"github.com/spf13/cobra"
)

type dumpOptions struct {
	mobile   bool
	time     float64
	lines    int
	speed    float64
	pointerX float64
	pointerY float64
}

func main() {
	if err := newDumpCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wavedump:", err)
		os.Exit(1)
	}
}

func newDumpCmd() *cobra.Command {
	var o dumpOptions
	cmd := &cobra.Command{
		Use:   "wavedump",
		Short: "Print one frame of wave geometry as CSV",
		Long: `Prints line,point,x,y,z rows for every line of a device tier at the
given animation time. A pointer position in [-1,1] applies the same
influence the interactive background does.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dump(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.mobile, "mobile", false, "use the mobile tier")
	f.Float64Var(&o.time, "time", 0, "animation time in seconds")
	f.IntVar(&o.lines, "lines", 0, "number of lines (0 = tier default)")
	f.Float64Var(&o.speed, "speed", 1, "animation speed multiplier")
	f.Float64Var(&o.pointerX, "pointer-x", 0, "smoothed pointer x in [-1,1]")
	f.Float64Var(&o.pointerY, "pointer-y", 0, "smoothed pointer y in [-1,1]")
	return cmd
}

func dump(w io.Writer, o dumpOptions) error {
	if o.lines < 0 {
		return fmt.Errorf("lines %d: %w", o.lines, wave.ErrInvalidConfig)
	}
	tier := wave.TierFor(o.mobile)
	n := o.lines
	if n == 0 {
		n = tier.Lines
	}

	out := csv.NewWriter(w)
	if err := out.Write([]string{"line", "point", "x", "y", "z"}); err != nil {
		return err
	}
	var pts []wave.Point3
	for i, l := range wave.NewLines(n, tier, o.speed) {
		cfg := wave.Influence(l.Base, o.pointerX, o.pointerY)
		pts = wave.AppendPoints(pts[:0], cfg, o.time)
		for j, p := range pts {
			rec := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				formatFloat(p.X()),
				formatFloat(p.Y()),
				formatFloat(p.Z()),
			}
			if err := out.Write(rec); err != nil {
				return err
			}
		}
	}
	out.Flush()
	return out.Error()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 5, 32)
}
