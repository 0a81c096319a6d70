package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.nlquery/config.toml.

Environment variables such as TYPESENSE_URL or LLM_API_KEY override
the file; see 'nlquery settings keys' for the recognised keys.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Sets a setting by its dot-notation key and saves the config file.

Examples:
  nlquery settings set index.url http://localhost:8108
  nlquery settings set index.collection products
  nlquery settings set llm.provider openai
  nlquery settings set llm.timeout 20s`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that required settings are present",
	Args:  cobra.NoArgs,
	RunE:  runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  URL: %s\n", orNotSet(settings.Index.URL))
	cmd.Printf("  API Key: %s\n", maskOrNotSet(settings.Index.APIKey))
	cmd.Printf("  Collection: %s\n", orNotSet(settings.Index.Collection))
	cmd.Printf("  Max Facet Values: %d\n", settings.Index.MaxFacetValues)
	cmd.Printf("  Query By: %s\n", settings.Index.QueryBy)
	cmd.Printf("  Timeout: %s\n", settings.Index.Timeout)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" || settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", orNotSet(settings.LLM.BaseURL))
	}
	if settings.LLM.Provider == domain.AIProviderGemini && settings.LLM.Project != "" {
		cmd.Printf("  Project: %s\n", settings.LLM.Project)
		cmd.Printf("  Location: %s\n", orNotSet(settings.LLM.Location))
	} else if !settings.LLM.Provider.IsLocal() {
		cmd.Printf("  API Key: %s\n", maskOrNotSet(settings.LLM.APIKey))
	}
	cmd.Printf("  Timeout: %s\n", settings.LLM.Timeout)
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Cache]")
	if settings.Cache.Enabled() {
		cmd.Printf("  Redis: %s (db %d)\n", settings.Cache.RedisAddr, settings.Cache.RedisDB)
		cmd.Printf("  Prefix: %s\n", settings.Cache.Prefix)
	} else {
		cmd.Println("  Redis: (not set, in-process only)")
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.RateLimit > 0 {
		cmd.Printf("  Rate Limit: %g/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	} else {
		cmd.Println("  Rate Limit: off")
	}
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.History.Enabled))
	if settings.History.DataDir != "" {
		cmd.Printf("  Data Dir: %s\n", settings.History.DataDir)
	}
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'nlquery settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := svc.Set(key, value); err != nil {
		return err
	}
	if isSecretKey(key) {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	for _, key := range svc.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Validate(); err != nil {
		return err
	}
	cmd.Println("Configuration is valid.")
	return nil
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key") || strings.HasSuffix(key, "password")
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskOrNotSet(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
