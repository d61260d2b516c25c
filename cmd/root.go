// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-assistant/internal/config"
	"github.com/naka-gawa/github-assistant/internal/gateway"
)

var rootCmd = &cobra.Command{
	Use:   "github-assistant",
	Short: "A toolkit for reviewing GitHub profiles and repositories.",
	Long: `github-assistant reviews GitHub profiles with a language model, drafts
README files from a repository's code and collects repository metrics.
Run "serve" to use it from the browser, or the other commands to print JSON.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./.github-assistant.yaml)")
}

// newLogger discards all logs unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// services holds the gateways shared by every command.
type services struct {
	cfg       *config.Config
	fetcher   gateway.Fetcher
	completer gateway.Completer
}

func loadServices(cmd *cobra.Command, logger *log.Logger) (*services, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ConfigFile != "" {
		logger.Printf("Using config file %s", cfg.ConfigFile)
	}
	if cfg.GitHubToken == "" {
		logger.Println("GITHUB_TOKEN is not set, GitHub requests are unauthenticated.")
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger, gateway.WithStatsRetry(1*time.Second, cfg.StatsRetryMax))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	s := &services{cfg: cfg, fetcher: githubGateway}
	// completer stays a nil interface without a key so the use cases report the model as unavailable.
	if cfg.LLMAPIKey != "" {
		llmClient, err := gateway.NewLLMClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create language model client: %w", err)
		}
		s.completer = llmClient
	} else {
		logger.Println("GROQ_API_KEY is not set, profile reviews and README drafts are disabled.")
	}
	return s, nil
}

// printJSON pretty-prints v to standard output.
func printJSON(v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// exitOnError prints err to standard error and exits.
func exitOnError(format string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, format+": %v\n", err)
		os.Exit(1)
	}
}
