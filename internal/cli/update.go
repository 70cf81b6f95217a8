package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	ID   string
	Data string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of a record by identifier",
		Long: `Overwrite the named fields of one record, leaving every other field
untouched. Encrypted values are re-sealed with the record's identifier as
nonce. The identifier itself cannot be changed; it is the nonce for every
sealed value in the row.

An absent identifier exits with code 1 and leaves the store unchanged.

Example:
  cryptab -F people_enc.csv --key secret update --id 3 --data "note=updated"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "identifier value (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&opts.Data, "data", "", "fields to overwrite as key=value pairs (required)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runUpdate(opts *UpdateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sc, err := openStore(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	updates := parseKeyValuePairs(opts.Data)
	ok, err := sc.Store.Update(opts.ID, updates)
	if err != nil {
		return WrapExitError(ExitCommandError, "update record", err)
	}
	if !ok {
		return fail(formatter, ExitFailure, "NOT_FOUND", fmt.Sprintf("no record with id=%s", opts.ID))
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"id": opts.ID})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Updated.")
	return nil
}
