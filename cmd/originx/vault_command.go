package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"originx/internal/vault"
)

func newVaultCommand(ctx *commandContext) *cobra.Command {
	vaultCmd := &cobra.Command{
		Use:   "vault",
		Short: "Inspect and manage the proof vault",
		Long: `Inspect and manage the proof vault.

Commands:
  info     - Show the backend, slot, and record count
  reset    - Erase every stored proof`,
	}

	vaultCmd.AddCommand(newVaultInfoCommand(ctx))
	vaultCmd.AddCommand(newVaultResetCommand(ctx))

	return vaultCmd
}

type vaultInfo struct {
	Backend      string `json:"backend"`
	Slot         string `json:"slot"`
	OnCorruption string `json:"on_corruption"`
	Records      int    `json:"records"`
}

func newVaultInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show vault backend and record count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(store *vault.Store) error {
				count, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				info := vaultInfo{
					Backend:      cfg.Vault.Backend,
					Slot:         fmt.Sprint(store.Backend()),
					OnCorruption: store.Policy().String(),
					Records:      count,
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, info)
				}
				writeFields(cmd.OutOrStdout(), []field{
					{label: "Backend", value: info.Backend},
					{label: "Slot", value: info.Slot},
					{label: "On corruption", value: info.OnCorruption},
					{label: "Records", value: assetsSecured(info.Records)},
				})
				return nil
			})
		},
	}
}

func newVaultResetCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every stored proof",
		Long: `Replace the vault with an empty collection.

This cannot be undone. Without --yes the command asks for confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *vault.Store) error {
				if !yes {
					if ctx.JSONMode() {
						return errors.New("vault reset requires --yes with --json")
					}
					// Load rather than List so a corrupted vault can still be reset.
					records, loadErr := store.Load(cmd.Context())
					fmt.Fprint(cmd.OutOrStdout(), resetPrompt(store.Backend(), len(records), loadErr))
					answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if err != nil && answer == "" {
						return errors.New("vault reset cancelled")
					}
					switch strings.ToLower(strings.TrimSpace(answer)) {
					case "y", "yes":
					default:
						fmt.Fprintln(cmd.OutOrStdout(), "Vault left unchanged")
						return nil
					}
				}

				if err := store.Reset(cmd.Context()); err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"reset": true})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Vault reset; all proofs erased")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func resetPrompt(slot any, count int, loadErr error) string {
	if loadErr != nil {
		return fmt.Sprintf("Vault %v could not be read: %s\nErase it anyway? Its current contents will be lost. [y/N]: ",
			slot, describeError(loadErr))
	}
	noun := "proofs"
	if count == 1 {
		noun = "proof"
	}
	return fmt.Sprintf("Erase %d stored %s from %v? [y/N]: ", count, noun, slot)
}
