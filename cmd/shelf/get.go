// Get command: retrieve a representation by ID or name.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/store"
	"github.com/mesh-intelligence/shelf/pkg/traits"
)

// flagGetByName switches the lookup from ID to name.
var flagGetByName bool

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a representation by ID",
	Long: `Get retrieves a representation and prints it with its traits.

Example:
  shelf get 0190cafe-babe-7000-8000-000000000000
  shelf get exr_sequence --by-name`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shelf, err := attachShelf()
		if err != nil {
			fmt.Fprintln(os.Stderr, "get:", err)
			os.Exit(exitSysError)
		}
		defer shelf.Detach()

		rep, err := lookup(shelf, args[0])
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "representation %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "get:", err)
			os.Exit(exitSysError)
		}

		traitData, err := rep.TraitsAsDict()
		if err != nil {
			fmt.Fprintln(os.Stderr, "get:", err)
			os.Exit(exitSysError)
		}
		return printJSON(map[string]any{
			"representation_id": rep.RepresentationID,
			"name":              rep.Name,
			"traits":            traitData,
		})
	},
}

// lookup fetches a representation by ID, or by name with --by-name.
func lookup(shelf store.Shelf, key string) (*traits.Representation, error) {
	if flagGetByName {
		return shelf.LoadByName(key)
	}
	return shelf.Load(key)
}

func init() {
	getCmd.Flags().BoolVar(&flagGetByName, "by-name", false, "look up by representation name instead of ID")
}
