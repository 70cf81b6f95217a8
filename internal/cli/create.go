package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cryptab/cryptab/internal/table"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Data  string
	GenID bool
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new record",
		Long: `Create a record from comma-separated key=value pairs. Fields not named
default to the empty string; encrypted fields are sealed with the record's
identifier as nonce before they touch disk.

The identifier field must appear in --data unless --gen-id is set, in which
case a UUID is generated for it. A duplicate identifier exits with code 1
and leaves the store unchanged.

Examples:
  cryptab -F people_enc.csv --key secret create --data "id=3,name=Charlie,email=charlie@example.com"
  cryptab -F people_enc.csv --key secret create --gen-id --data "name=Dana"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Data, "data", "", "record data as key=value pairs separated by commas (required)")
	_ = cmd.MarkFlagRequired("data")
	cmd.Flags().BoolVar(&opts.GenID, "gen-id", false, "generate a UUID identifier when --data omits it")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sc, err := openStore(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	row := parseKeyValuePairs(opts.Data)
	idField := sc.Store.IDField()
	if row[idField] == "" {
		if !opts.GenID {
			return fail(formatter, ExitCommandError, "MISSING_ID",
				fmt.Sprintf("data must include the identifier field %q (or pass --gen-id)", idField))
		}
		row[idField] = uuid.Must(uuid.NewV7()).String()
		formatter.VerboseLog("generated identifier %s", row[idField])
	}
	formatter.VerboseLog("creating record %s=%s (fields: %s)",
		idField, row[idField], strings.Join(sortedKeys(row), ","))

	if err := sc.Store.Create(row); err != nil {
		if table.IsDuplicateID(err) {
			return fail(formatter, ExitFailure, "DUPLICATE_ID",
				fmt.Sprintf("a record with id=%s already exists", row[idField]))
		}
		return WrapExitError(ExitCommandError, "create record", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"id": row[idField]})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Created.")
	return nil
}
