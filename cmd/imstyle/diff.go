package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imstyle/pkg/render"
)

// errImagesDiffer is returned when diff finds a mismatch.
type errImagesDiffer struct {
	res *render.CompareResult
}

func (e errImagesDiffer) Error() string {
	return fmt.Sprintf("images differ: %d of %d pixels (max channel difference %d)",
		e.res.DifferentPixels, e.res.TotalPixels, e.res.MaxDifference)
}

func newDiffCmd() *cobra.Command {
	opts := render.DefaultOptions()
	var diffOut string

	cmd := &cobra.Command{
		Use:   "diff <a.png> <b.png>",
		Short: "Compare two PNG images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			opts.Diff = diffOut != ""
			res, err := render.CompareFiles(args[0], args[1], opts)
			if err != nil {
				return err
			}
			if res.Diff != nil && !res.Match {
				if err := render.WritePNG(res.Diff, diffOut); err != nil {
					return fmt.Errorf("save diff image: %w", err)
				}
				logger.Info("wrote diff image", "path", diffOut)
			}
			if !res.Match {
				return errImagesDiffer{res: res}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "match (%d pixels differ, max difference %d)\n",
				res.DifferentPixels, res.MaxDifference)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Tolerance, "tolerance", opts.Tolerance, "largest per-channel difference counted as equal")
	f.IntVar(&opts.FuzzyRadius, "fuzzy", 0, "match pixels within this radius")
	f.Float64Var(&opts.MaxDifferentPercent, "max-percent", 0, "pass when at most this percent of pixels differ")
	f.StringVar(&diffOut, "diff-out", "", "write a diff image here on mismatch")
	return cmd
}
