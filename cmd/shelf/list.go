// List command: print a summary of every stored representation.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored representations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shelf, err := attachShelf()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}
		defer shelf.Detach()

		summaries, err := shelf.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(summaries)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTRAITS\tUPDATED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				s.RepresentationID, s.Name, s.TraitCount,
				s.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}
