package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-insights/internal/analysis"
	"github.com/jonathan/career-insights/internal/catalog"
	"github.com/jonathan/career-insights/internal/config"
	"github.com/jonathan/career-insights/internal/observability"
	"github.com/jonathan/career-insights/internal/schemas"
	"github.com/jonathan/career-insights/internal/statcan"
	"github.com/jonathan/career-insights/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full career prospect analysis for a field of study",
	Long: `Fetches labour force, income, unemployment, job vacancy, and graduate
outcome statistics for the selected field, education level, and region, then
runs all nine analyses and prints the results.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath   string
	analyzeField        string
	analyzeSubfield     string
	analyzeEducation    string
	analyzeRegion       string
	analyzeSnapshotPath string
	analyzeJSON         bool
	analyzeNoCache      bool
	analyzeAPIBaseURL   string
	analyzeVerbose      bool
)

func init() {
	// Config file flag (processed first)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVarP(&analyzeField, "field", "f", "", "Field of study (broad field name, CIP code, or free text)")
	analyzeCmd.Flags().StringVar(&analyzeSubfield, "subfield", "", "Subfield within the broad field")
	analyzeCmd.Flags().StringVarP(&analyzeEducation, "education", "e", "", "Education level")
	analyzeCmd.Flags().StringVarP(&analyzeRegion, "region", "r", "", "Province, territory, or Canada")
	analyzeCmd.Flags().StringVar(&analyzeSnapshotPath, "snapshot", "", "Path to a snapshot JSON file to analyze instead of fetching")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print results as JSON instead of formatted text")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Bypass the snapshot cache")
	analyzeCmd.Flags().StringVar(&analyzeAPIBaseURL, "api-url", "", "Statistics Canada WDS base URL override")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, analyzeConfigPath)
	if err != nil {
		return err
	}

	var (
		snap      *types.SurveySnapshot
		fromCache bool
	)

	if analyzeSnapshotPath != "" {
		snap, err = loadSnapshotFile(analyzeSnapshotPath)
		if err != nil {
			return err
		}
	} else {
		if cfg.Field == "" {
			return fmt.Errorf("a field of study is required: pass --field or set it in the config file")
		}
		if err := resolveField(&cfg); err != nil {
			return err
		}

		snap, fromCache, err = fetchSnapshot(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to fetch snapshot: %w", err)
		}
	}

	results := analysis.RunAll(snap, analysis.Options{
		Costs:         cfg.CostTable(),
		ShortNames:    catalog.ShortNames(),
		ResolveSeries: catalog.UnemploymentSeriesKey,
	})

	if analyzeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if fromCache && cfg.Verbose {
		fmt.Println("Using cached snapshot")
	}
	observability.NewPrinter(os.Stdout).PrintResults(results)
	return nil
}

// loadMergedConfig loads the optional config file, applies CLI overrides, and
// fills in defaults. Command-line args take priority over the file.
func loadMergedConfig(cmd *cobra.Command, path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", path)
		}
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("field") {
		cfg.Field = analyzeField
	}
	if cmd.Flags().Changed("subfield") {
		cfg.Subfield = analyzeSubfield
	}
	if cmd.Flags().Changed("education") {
		cfg.Education = analyzeEducation
	}
	if cmd.Flags().Changed("region") {
		cfg.Region = analyzeRegion
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIBaseURL = analyzeAPIBaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveField maps a free-text or CIP-code field query onto a canonical
// broad field, filling in the subfield when the match pins one down.
func resolveField(cfg *config.Config) error {
	if _, ok := catalog.FieldByName(cfg.Field); ok {
		return nil
	}

	matches := catalog.MatchFields(cfg.Field)
	if len(matches) == 0 {
		return fmt.Errorf("no field of study matches %q; try the match command to explore options", cfg.Field)
	}

	best := matches[0]
	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Resolved %q to %s (%s match, score %.2f)\n",
			cfg.Field, best.DisplayName, best.MatchType, best.Score)
	}
	cfg.Field = best.BroadField
	if cfg.Subfield == "" && best.Subfield != "" {
		cfg.Subfield = best.Subfield
	}
	return nil
}

// fetchSnapshot assembles the survey snapshot for the configured selection.
func fetchSnapshot(ctx context.Context, cfg config.Config) (*types.SurveySnapshot, bool, error) {
	clientOpts := statcan.DefaultOptions()
	if cfg.APIBaseURL != "" {
		clientOpts.BaseURL = cfg.APIBaseURL
	}
	if cfg.TimeoutSeconds > 0 {
		clientOpts.Timeout = cfg.Timeout()
	}

	assembler := statcan.NewCachedAssembler(
		statcan.NewAssembler(statcan.NewClient(clientOpts)),
		&statcan.CachedAssemblerConfig{
			TTL:       cfg.CacheTTL(),
			SkipCache: analyzeNoCache,
		},
	)

	cached, err := assembler.Snapshot(ctx, statcan.Selection{
		Field:     cfg.Field,
		Subfield:  cfg.Subfield,
		Education: cfg.Education,
		Region:    cfg.Region,
	})
	if err != nil {
		return nil, false, err
	}
	return cached.Snapshot, cached.FromCache, nil
}

// loadSnapshotFile reads and schema-validates a snapshot JSON file.
func loadSnapshotFile(path string) (*types.SurveySnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.SnapshotSchemaPath); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return nil, fmt.Errorf("snapshot file is invalid: %w", err)
		}
	}

	var snap types.SurveySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return &snap, nil
}
