// Package cli implements the nlquery command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
	"github.com/custodia-labs/nlquery/internal/logger"
)

var version = "dev"

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Services holds the driving ports the commands call.
type Services struct {
	Translation   driving.TranslationService
	Introspection driving.IntrospectionService
	Search        driving.SearchService
	History       driving.HistoryService
	Settings      driving.SettingsService
	Health        driving.HealthService

	// PipelineErr explains why the pipeline services are unset, usually
	// a *domain.QueryError naming missing configuration.
	PipelineErr error

	// WatchPrompts watches prompt overrides until ctx is done. Optional.
	WatchPrompts func(ctx context.Context) error

	// Close releases resources opened while building the services.
	Close func() error
}

// Options carries global flags to the Bootstrap function.
type Options struct {
	// ConfigDir overrides ~/.nlquery.
	ConfigDir string

	// EnvFiles lists .env files to load before reading settings.
	EnvFiles []string
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	services  Services
	bootstrap Bootstrap
	booted    bool
	bootErr   error
	configDir string
	envFiles  []string
	verbose   bool
	logFormat string
)

// skipBootstrap marks commands that never need services.
const skipBootstrap = "nlquery/skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "nlquery",
	Short: "Translate natural-language shopping requests into Typesense queries",
	Long: `nlquery turns free-text clothing searches such as "cheap red Nike shirts"
into structured Typesense queries (query, filter_by, sort_by).

It describes the product collection to a generative model, asks for a
query in a strict JSON shape, and validates the answer before use.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.nlquery)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load")
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing Bootstrap.
func SetServices(s Services) {
	services = s
	booted = true
	bootErr = nil
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as serve.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetFormat(logFormat)

	if cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	if booted || bootstrap == nil {
		return bootErr
	}
	booted = true
	built, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir, EnvFiles: envFiles})
	if err != nil {
		bootErr = err
		return err
	}
	services = *built
	return nil
}

func closeServices() {
	if services.Close == nil {
		return
	}
	if err := services.Close(); err != nil {
		logger.Warn("Closing services: %v", err)
	}
}

func notConfigured(name string) error {
	return fmt.Errorf("%s service not configured", name)
}

func pipelineErr(name string) error {
	if services.PipelineErr != nil {
		return services.PipelineErr
	}
	return notConfigured(name)
}

func translationService() (driving.TranslationService, error) {
	if services.Translation == nil {
		return nil, pipelineErr("translation")
	}
	return services.Translation, nil
}

func introspectionService() (driving.IntrospectionService, error) {
	if services.Introspection == nil {
		return nil, pipelineErr("introspection")
	}
	return services.Introspection, nil
}

func searchService() (driving.SearchService, error) {
	if services.Search == nil {
		return nil, pipelineErr("search")
	}
	return services.Search, nil
}

func historyService() (driving.HistoryService, error) {
	if services.History == nil {
		return nil, notConfigured("history")
	}
	return services.History, nil
}

func settingsService() (driving.SettingsService, error) {
	if services.Settings == nil {
		return nil, notConfigured("settings")
	}
	return services.Settings, nil
}
