package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"originx/internal/proof"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var input contentInput

	cmd := &cobra.Command{
		Use:   "verify [-]",
		Short: "Check content against stored proofs",
		Long: `Fingerprint content and check whether a stored proof matches it.

Exits with status 2 when no proof matches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := input.content(cmd, args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *proof.Service) error {
				result, err := svc.Verify(cmd.Context(), content)
				if err != nil {
					return err
				}
				return printVerification(cmd, ctx, result)
			})
		},
	}

	input.bind(cmd)
	return cmd
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <fingerprint>",
		Short: "Find the proof for a known fingerprint",
		Long: `Find the stored proof for a fingerprint computed elsewhere.

Exits with status 2 when no proof matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *proof.Service) error {
				result, err := svc.Lookup(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printVerification(cmd, ctx, result)
			})
		},
	}
}

func printVerification(cmd *cobra.Command, ctx *commandContext, result proof.Verification) error {
	if ctx.JSONMode() {
		if err := writeJSON(cmd, result); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		colorize := shouldColorize(out)
		if result.Matched() {
			match := result.Match
			fmt.Fprintln(out, renderHeadline(statusOK, "MATCH: content matches a stored proof", colorize))
			writeFields(out, []field{
				{label: "Label", value: match.DisplayLabel()},
				{label: "Created", value: fmt.Sprintf("%s (%s)", formatTimestamp(match.Timestamp), formatAge(match.Timestamp))},
				{label: "Fingerprint", value: result.Fingerprint},
				{label: "ID", value: match.ID},
			})
		} else {
			fmt.Fprintln(out, renderHeadline(statusWarn, "MISMATCH: no stored proof has this fingerprint", colorize))
			writeFields(out, []field{
				{label: "Fingerprint", value: result.Fingerprint},
			})
		}
	}
	if !result.Matched() {
		return errMismatch
	}
	return nil
}
