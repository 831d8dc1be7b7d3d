// cmd/surveyranker/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/internal/pipeline"
	"github.com/valpere/SurveyRanker/internal/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// Exit codes.
const (
	exitOK     = 0
	exitUsage  = 1
	exitRun    = 2
	exitNoData = 3
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitUsage)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "Error: run requires a configuration file")
			printUsage()
			os.Exit(exitUsage)
		}
		os.Exit(runRanking(args[0], hasFlag(args, "-v", "--verbose")))

	case "validate":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "Error: validate requires a configuration file")
			printUsage()
			os.Exit(exitUsage)
		}
		os.Exit(validateConfig(args[0]))

	case "template":
		if err := printTemplate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitRun)
		}

	case "version", "--version":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(exitUsage)
	}
}

// runRanking executes the full pipeline for one configuration file and
// returns the process exit code.
func runRanking(configFile string, verbose bool) int {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := utils.NewLogger()
	if verbose {
		logger = utils.NewLoggerWithLevel(utils.DebugLevel)
		fmt.Printf("Configuration loaded: %s\n", cfg.Name)
		fmt.Printf("Input file: %s\n", cfg.Input.File)
		fmt.Printf("URL columns: %v\n", cfg.Input.Schema.URLs)
		fmt.Printf("Output format: %s\n", cfg.Output.Format)
	}

	p := pipeline.New(cfg)
	p.SetLogger(logger)
	p.SetProgress(func(current, total int) {
		fmt.Fprintf(os.Stderr, "\rresolving row %d/%d", current, total)
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	})

	result, err := p.Run(context.Background())
	if err != nil {
		switch utils.CodeOf(err) {
		case utils.ErrCodeNoData:
			fmt.Fprintln(os.Stderr, "No valid video data was found. Check the column layout and URL fields of the input file.")
			return exitNoData
		case utils.ErrCodeInputRead:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitRun
		}
	}

	fmt.Printf("Ranking written to %s (%d videos from %d votes)\n",
		result.OutputPath, result.Metrics.RankedVideos, result.Metrics.Votes)

	printAdvisory(result)
	return exitOK
}

// printAdvisory reports the informational findings of a run. None of
// these block the ranking.
func printAdvisory(result *pipeline.Result) {
	for _, mismatch := range result.Advisory.QuotaMismatches {
		fmt.Printf("⚠ %s submitted %d votes instead of the expected quota\n",
			mismatch.Respondent, mismatch.Votes)
	}
	if result.Advisory.DroppedURLs > 0 {
		fmt.Printf("⚠ %d URLs could not be resolved and were dropped\n", result.Advisory.DroppedURLs)
	}
	if result.Advisory.DegradedVotes > 0 {
		fmt.Printf("⚠ %d votes carry placeholder metadata after failed lookups\n", result.Advisory.DegradedVotes)
	}
}

// validateConfig checks a configuration file without running anything.
func validateConfig(configFile string) int {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
	fmt.Printf("  Name: %s\n", cfg.Name)
	fmt.Printf("  Input: %s\n", cfg.Input.File)
	fmt.Printf("  Output format: %s\n", cfg.Output.Format)
	return exitOK
}

// printTemplate writes a starter configuration to stdout.
func printTemplate(args []string) error {
	templateType := "basic"
	if len(args) > 1 && args[0] == "--type" {
		templateType = args[1]
	}

	data, err := yaml.Marshal(config.GenerateTemplate(templateType))
	if err != nil {
		return fmt.Errorf("failed to marshal template to YAML: %w", err)
	}

	fmt.Print(string(data))
	return nil
}

func printVersion() {
	fmt.Printf("surveyranker %s (built %s, commit %s)\n", version, buildTime, gitCommit)
}

func printUsage() {
	fmt.Println(`surveyranker - video survey aggregation and ranking

Usage:
  surveyranker run <config.yaml> [-v|--verbose]   Run the full ranking pipeline
  surveyranker validate <config.yaml>             Validate a configuration file
  surveyranker template [--type basic|full]       Print a starter configuration
  surveyranker version                            Show version information
  surveyranker help                               Show this help`)
}

// hasFlag reports whether any of the given flags appears in args.
func hasFlag(args []string, flags ...string) bool {
	for _, arg := range args {
		for _, flag := range flags {
			if arg == flag {
				return true
			}
		}
	}
	return false
}
