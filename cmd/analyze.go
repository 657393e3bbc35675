package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/fileflow/analyze"
	"github.com/gnolang/fileflow/formatter"
	"github.com/gnolang/fileflow/internal/config"
)

var (
	domainsFlag []string
	jsonOutput  bool
	outPath     string
	watch       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Run the configured dataflow domains over graph files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		conf, err := loadConfig(logger, cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		if len(domainsFlag) > 0 {
			conf.Analysis.Domains = domainsFlag
		}

		analyzer, err := analyze.New(logger, conf)
		if err != nil {
			logger.Fatal("Failed to initialize analyzer", zap.Error(err))
		}

		if watch {
			analyzer.SetCache(analyze.NewCache())
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err := watchPaths(ctx, logger, args, func() {
				if _, err := runAnalysis(ctx, cmd.OutOrStdout(), analyzer, args, jsonOutput, outPath); err != nil {
					logger.Error("Error analyzing graphs", zap.Error(err))
				}
			})
			if err != nil {
				logger.Fatal("Failed to watch paths", zap.Error(err))
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		issues, err := runAnalysis(ctx, cmd.OutOrStdout(), analyzer, args, jsonOutput, outPath)
		if err != nil {
			logger.Error("Error analyzing graphs", zap.Error(err))
			os.Exit(1)
		}
		if issues > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&domainsFlag, "domain", nil, "Domains to run (overrides the configuration)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	analyzeCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	analyzeCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Analyze again whenever a graph file changes")
}

// loadConfig reads the configuration file, falling back to the defaults when
// it does not exist.
func loadConfig(logger *zap.Logger, path string) (config.Config, error) {
	conf, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("Configuration file not found, using defaults", zap.String("path", path))
		return config.Default(), nil
	}
	return conf, err
}

// runAnalysis analyzes paths and prints the reports. It returns the number
// of issues found.
func runAnalysis(ctx context.Context, stdout io.Writer, analyzer *analyze.Analyzer, paths []string, isJSON bool, jsonPath string) (int, error) {
	reports, err := analyzer.Paths(ctx, paths)
	if err != nil {
		return 0, err
	}

	issues := 0
	for _, r := range reports {
		issues += len(r.Issues)
	}

	if !isJSON {
		for _, r := range reports {
			fmt.Fprintln(stdout, formatter.FormatReport(r))
		}
		return issues, nil
	}

	if jsonPath == "" {
		return issues, formatter.WriteJSON(stdout, reports)
	}
	f, err := os.Create(jsonPath)
	if err != nil {
		return issues, err
	}
	defer f.Close()
	return issues, formatter.WriteJSON(f, reports)
}
