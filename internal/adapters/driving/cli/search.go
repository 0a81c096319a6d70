package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

var (
	searchPage    int
	searchPerPage int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search the product catalogue with free text",
	Long: `Translates the request into a structured query and runs it against the
product collection. The query that was executed is printed above the hits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPerPage, "limit", "n", 10, "results per page")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := searchService()
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{Page: searchPage, PerPage: searchPerPage}
	result, err := svc.Search(cmd.Context(), strings.Join(args, " "), opts)
	if err != nil {
		return err
	}

	if searchJSON {
		return printJSON(cmd, result)
	}
	outputSearchTable(cmd, result)
	return nil
}

func outputSearchTable(cmd *cobra.Command, result *domain.SearchResult) {
	q := result.Query
	if q.IsEmpty() {
		cmd.Println("Query: * (no constraints, matching every product)")
	} else {
		cmd.Printf("Query: %s\n", q.SearchText())
	}
	if q.FilterBy != "" {
		cmd.Printf("Filter: %s\n", q.FilterBy)
	}
	if q.SortBy != "" {
		cmd.Printf("Sort: %s\n", q.SortBy)
	}
	cmd.Println()

	if len(result.Products) == 0 {
		cmd.Println("No products found.")
		return
	}

	cmd.Printf("%d products found (page %d):\n\n", result.Found, result.Page)
	for i := range result.Products {
		p := result.Products[i]
		cmd.Printf("  [%d] %s\n", i+1, p.Name)
		var details []string
		if p.BrandName != "" {
			details = append(details, p.BrandName)
		}
		if p.Color != "" {
			details = append(details, p.Color)
		}
		if p.Size != "" {
			details = append(details, "size "+p.Size)
		}
		if len(details) > 0 {
			cmd.Printf("      %s\n", strings.Join(details, " · "))
		}
		if p.Price > 0 {
			if p.ListPrice > p.Price {
				cmd.Printf("      %.2f (was %.2f)\n", p.Price, p.ListPrice)
			} else {
				cmd.Printf("      %.2f\n", p.Price)
			}
		}
		if p.Link != "" {
			cmd.Printf("      %s\n", p.Link)
		}
		cmd.Println()
	}
}
