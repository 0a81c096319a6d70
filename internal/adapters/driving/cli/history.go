package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent translations",
	Long: `Lists recorded translations, newest first. Both successes and failures
are recorded with the model used and the time taken.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one recorded translation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", domain.DefaultHistoryLimit, "number of entries")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}

	entries, err := svc.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println("No translations recorded.")
		return nil
	}
	for i := range entries {
		e := entries[i]
		status := "ok"
		if !e.Succeeded() {
			status = string(e.ErrorKind)
			if status == "" {
				status = "failed"
			}
		}
		cmd.Printf("%s  %-13s %6s  %s\n",
			e.CreatedAt.Local().Format(time.DateTime), status, e.Duration.Round(time.Millisecond), e.Text)
		cmd.Printf("    id: %s\n", e.ID)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	svc, err := historyService()
	if err != nil {
		return err
	}

	entry, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:       %s\n", entry.ID)
	cmd.Printf("Text:     %s\n", entry.Text)
	cmd.Printf("When:     %s\n", entry.CreatedAt.Local().Format(time.DateTime))
	cmd.Printf("Model:    %s\n", entry.Model)
	cmd.Printf("Duration: %s\n", entry.Duration.Round(time.Millisecond))
	if entry.Succeeded() {
		cmd.Println("Result:")
		return printJSON(cmd, entry.Result)
	}
	cmd.Printf("Error:    [%s] %s\n", entry.ErrorKind, entry.Error)
	return nil
}
