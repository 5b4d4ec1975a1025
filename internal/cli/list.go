package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"toolbox/pkg/tool"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available tools",
	Long:  `List all registered tools, optionally filtered by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := getRegistry()
		if err != nil {
			return err
		}

		var items []*tool.Tool
		if listCategory != "" {
			if !tool.IsValidCategory(listCategory) {
				return fmt.Errorf("unknown category %q, valid categories: %s", listCategory, categoryList())
			}
			items = reg.ByCategory(tool.Category(listCategory))
		} else {
			items = reg.All()
		}

		sort.Slice(items, func(i, j int) bool {
			if items[i].Category != items[j].Category {
				return items[i].Category < items[j].Category
			}
			return items[i].ID < items[j].ID
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, t := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Category.Label(), t.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d tools\n", len(items))
		return nil
	},
}

func categoryList() string {
	out := ""
	for i, c := range tool.AllCategories() {
		if i > 0 {
			out += ", "
		}
		out += string(c)
	}
	return out
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only show tools in this category")
	rootCmd.AddCommand(listCmd)
}
