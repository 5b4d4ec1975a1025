package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tools by keyword",
	Long:  `Search tool ids, titles, descriptions, categories, and keywords for the given query.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := getRegistry()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		matches := reg.Search(query)
		if len(matches) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No tools match %q\n", query)
			return nil
		}

		sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, t := range matches {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Category.Label(), t.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
