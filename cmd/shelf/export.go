// Export command: write a stored representation to a JSON file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <id> <file.json>",
	Short: "Export a representation to a JSON file",
	Long: `Export writes a stored representation to a JSON file in the same
format consumed by add.

Example:
  shelf export 0190cafe-babe-7000-8000-000000000000 render.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		shelf, err := attachShelf()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer shelf.Detach()

		rep, err := shelf.Load(args[0])
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "representation %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}

		if err := writeRepresentationFile(args[1], rep); err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Exported %s to %s\n", rep.Name, args[1])
		return nil
	},
}
