// Add command: import a representation from a JSON file into the store.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/store"
)

// flagAddName overrides the representation name from the file.
var flagAddName string

var addCmd = &cobra.Command{
	Use:   "add <file.json>",
	Short: "Add a representation from a JSON file",
	Long: `Add imports a representation from a JSON file and stores it.

The file holds the representation name and a mapping of versioned trait IDs
to trait data:

  {
    "name": "exr_sequence",
    "traits": {
      "ayon.content.MimeType.v1": {"mime_type": "image/x-exr"}
    }
  }

Example:
  shelf add render.json
  shelf add render.json --name exr_final`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := readRepresentationFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "add:", err)
			os.Exit(exitUserError)
		}
		if flagAddName != "" {
			rep.Name = flagAddName
		}

		shelf, err := attachShelf()
		if err != nil {
			fmt.Fprintln(os.Stderr, "add:", err)
			os.Exit(exitSysError)
		}
		defer shelf.Detach()

		if err := shelf.Save(rep); err != nil {
			if errors.Is(err, store.ErrDuplicateName) || errors.Is(err, store.ErrTransient) {
				fmt.Fprintln(os.Stderr, "add:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "add:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"representation_id": rep.RepresentationID,
				"name":              rep.Name,
			})
		}
		fmt.Printf("Added %s (%s)\n", rep.Name, rep.RepresentationID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&flagAddName, "name", "", "override the representation name from the file")
}
