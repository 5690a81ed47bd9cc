package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"originx/internal/vault"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored proofs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *vault.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				total := len(records)
				if limit > 0 && limit < len(records) {
					records = records[:limit]
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, records)
				}

				out := cmd.OutOrStdout()
				if total == 0 {
					fmt.Fprintln(out, "Vault is empty. Register a proof with `originx create`.")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for i, record := range records {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						record.DisplayLabel(),
						shortFingerprint(record.Fingerprint),
						formatTimestamp(record.Timestamp),
						formatAge(record.Timestamp),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Label", "Fingerprint", "Created", "Age"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
					assetsSecured(total),
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many proofs (0 for all)")
	return cmd
}
