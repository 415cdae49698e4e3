// Validate command: run trait validation on a representation.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/traits"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json|id>",
	Short: "Validate a representation's traits",
	Long: `Validate runs every trait's validation against the representation and
reports all failures. The argument is a representation JSON file when it
ends in .json, otherwise a stored representation ID.

Example:
  shelf validate render.json
  shelf validate 0190cafe-babe-7000-8000-000000000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := loadValidationTarget(args[0])
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "representation %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "validate:", err)
			os.Exit(exitUserError)
		}

		if err := rep.Validate(); err != nil {
			var verr *traits.ValidationError
			if errors.As(err, &verr) {
				if flagJSON {
					return printJSON(map[string]any{
						"valid":    false,
						"scope":    verr.Scope,
						"failures": strings.Split(verr.Message, "\n"),
					})
				}
				fmt.Fprintln(os.Stderr, "validation failed:")
				for _, line := range strings.Split(verr.Message, "\n") {
					fmt.Fprintln(os.Stderr, " ", line)
				}
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "validate:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(map[string]any{"valid": true})
		}
		fmt.Printf("%s is valid (%d traits)\n", rep.Name, rep.Len())
		return nil
	},
}

// loadValidationTarget reads the representation from a JSON file or, for a
// non-file argument, from the store.
func loadValidationTarget(arg string) (*traits.Representation, error) {
	if strings.HasSuffix(arg, ".json") {
		return readRepresentationFile(arg)
	}

	shelf, err := attachShelf()
	if err != nil {
		return nil, err
	}
	defer shelf.Detach()
	return shelf.Load(arg)
}
