package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"originx/internal/proof"
)

func newHashCommand(ctx *commandContext) *cobra.Command {
	var input contentInput

	cmd := &cobra.Command{
		Use:   "hash [-]",
		Short: "Print the fingerprint of content without storing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := input.content(cmd, args)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			digest, err := proof.NewService(nil, logger).Fingerprint(cmd.Context(), content)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, digest)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, digest.Fingerprint)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s of %s\n", formatSize(digest.Size), digest.Source)
			return nil
		},
	}

	input.bind(cmd)
	return cmd
}
