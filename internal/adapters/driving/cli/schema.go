package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

var schemaNoCache bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the collection properties shown to the model",
	Long: `Prints the product property table that is inserted into the prompt.

By default the cached table is used (computed on first use and shared
through redis when configured). --no-cache recomputes it from the index
without reading or updating any cache.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the schema cache",
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Drop the cached schema table",
	Long: `Drops the cached schema table locally and in the shared redis snapshot.
Run this after changing the collection schema or its facet values.`,
	Args: cobra.NoArgs,
	RunE: runCacheInvalidate,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaNoCache, "no-cache", false, "recompute from the index, bypassing caches")
	cacheCmd.AddCommand(cacheInvalidateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	svc, err := introspectionService()
	if err != nil {
		return err
	}

	var table string
	if schemaNoCache {
		table, err = svc.SchemaTableUncached(cmd.Context())
	} else {
		table, err = svc.SchemaTable(cmd.Context())
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), driven.SchemaTableHeader)
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func runCacheInvalidate(cmd *cobra.Command, _ []string) error {
	svc, err := introspectionService()
	if err != nil {
		return err
	}
	if err := svc.Invalidate(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Schema cache invalidated.")
	return nil
}
