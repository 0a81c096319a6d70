package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the index and the model are reachable",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, _ []string) error {
	if services.Health == nil {
		return pipelineErr("health")
	}

	checks := services.Health.Check(cmd.Context())
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var failed []string
	for _, name := range names {
		if err := checks[name]; err != nil {
			cmd.Printf("  %-8s FAIL  %v\n", name, err)
			failed = append(failed, name)
			continue
		}
		cmd.Printf("  %-8s ok\n", name)
	}

	if len(failed) > 0 {
		return fmt.Errorf("unreachable: %s", strings.Join(failed, ", "))
	}
	return nil
}
