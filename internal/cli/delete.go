package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	ID string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a record by identifier",
		Long: `Remove the record with the given identifier and rewrite the store.

An absent identifier exits with code 1 and leaves the store unchanged.

Example:
  cryptab -F people_enc.csv --key secret delete --id 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "identifier value (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runDelete(opts *DeleteOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sc, err := openStore(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	ok, err := sc.Store.Delete(opts.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "delete record", err)
	}
	if !ok {
		return fail(formatter, ExitFailure, "NOT_FOUND", fmt.Sprintf("no record with id=%s", opts.ID))
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"id": opts.ID})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
	return nil
}
