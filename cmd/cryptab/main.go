// Command cryptab provides CRUD over a field-encrypted CSV store.
package main

import (
	"fmt"
	"os"

	"github.com/cryptab/cryptab/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
