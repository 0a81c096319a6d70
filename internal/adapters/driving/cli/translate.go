package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

var translateEnvelope bool

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate free text into a structured query",
	Long: `Translates a shopper's request into a Typesense query.

The output is a JSON object with any of query, filter_by and sort_by.
With --envelope the result is wrapped as {"data": ..., "error": ...}
and failures are reported inside it instead of as an exit status.

Example:
  nlquery translate "black adidas hoodies under 60 euros, cheapest first"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().BoolVar(&translateEnvelope, "envelope", false, "wrap output as {data, error}")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	svc, err := translationService()
	if err != nil && !translateEnvelope {
		return err
	}

	var q *domain.StructuredQuery
	if err == nil {
		q, err = svc.Translate(cmd.Context(), text)
	}

	if translateEnvelope {
		return printJSON(cmd, domain.NewResult(q, err))
	}
	if err != nil {
		return err
	}
	return printJSON(cmd, q)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
