package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lensbook/lensbook/internal/config"
	"github.com/lensbook/lensbook/pkg/errors"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <book.yaml>",
		Short: "Validate a brand book document without launching the viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.ParseDocument(args[0])
			if err != nil {
				if errors.IsValidationError(err) || errors.IsParseError(err) {
					return err
				}
				return fmt.Errorf("failed to read document: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sections, %d nav items, ok\n",
				args[0], len(doc.Sections), len(doc.Nav))
			return nil
		},
	}
}
