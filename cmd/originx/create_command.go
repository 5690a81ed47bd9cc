package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"originx/internal/proof"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var input contentInput
	var label string

	cmd := &cobra.Command{
		Use:   "create [-]",
		Short: "Fingerprint content and store a proof of creation",
		Long: `Fingerprint content locally and store a proof of creation for it.

The proof records the SHA-256 fingerprint, the current time, and a label.
The content itself is never stored.

Examples:
  originx create --text "first verse" --label "Song draft"
  originx create --file ./cover.png
  cat manuscript.md | originx create - --label Manuscript`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := input.content(cmd, args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *proof.Service) error {
				record, err := svc.Create(cmd.Context(), content, label)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, record)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderHeadline(statusOK, "Proof created", shouldColorize(out)))
				writeFields(out, []field{
					{label: "Label", value: record.DisplayLabel()},
					{label: "Fingerprint", value: record.Fingerprint},
					{label: "Created", value: formatTimestamp(record.Timestamp)},
					{label: "ID", value: record.ID},
				})
				return nil
			})
		},
	}

	input.bind(cmd)
	cmd.Flags().StringVarP(&label, "label", "l", "", "Human-readable name for the proof")
	return cmd
}
