package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	ID string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get one record by identifier",
		Long: `Look up a single record by its identifier and print the decrypted view.

An absent identifier exits with code 1.

Example:
  cryptab --file people_enc.csv --key secret get --id 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "identifier value (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runGet(opts *GetOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sc, err := openStore(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	rec, found, err := sc.Store.Get(opts.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "get record", err)
	}
	if !found {
		return fail(formatter, ExitFailure, "NOT_FOUND", fmt.Sprintf("no record with id=%s", opts.ID))
	}

	if opts.Format == "json" {
		return formatter.Success(newRecordPayload(rec))
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatRecord(sc.Store.Fields(), rec))
	return nil
}
