// Delete command for the shelf CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a representation by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shelf, err := attachShelf()
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}
		defer shelf.Detach()

		if err := shelf.Delete(args[0]); err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "representation %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("Deleted", args[0])
		return nil
	},
}
