package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"imstyle/pkg/css"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <style.css>...",
		Short: "Parse stylesheets and report errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			var errs []error
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				sheet, err := css.ParseStylesheet(string(src))
				if err != nil {
					logger.Error("invalid stylesheet", "path", path, "err", err)
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules\n", path, sheet.Len())
			}
			return errors.Join(errs...)
		},
	}
}
