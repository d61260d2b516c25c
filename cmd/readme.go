package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-assistant/internal/domain"
	"github.com/naka-gawa/github-assistant/internal/usecase"
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Drafts a README for a repository",
	Long: `Samples source files of a repository and asks the language model for a README.md.
The result is printed as JSON, or as plain markdown with --raw.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		branch, _ := cmd.Flags().GetString("branch")
		raw, _ := cmd.Flags().GetBool("raw")

		svc, err := loadServices(cmd, logger)
		exitOnError("Failed to initialize", err)

		generator := usecase.NewReadmeGenerator(svc.fetcher, svc.completer, logger)
		draft, err := generator.Generate(ctx, owner, repo, branch)
		exitOnError("Failed to generate README", err)

		if raw {
			fmt.Println(draft.Readme)
			return
		}
		exitOnError("Failed to print README", printJSON(draft))
	},
}

func init() {
	rootCmd.AddCommand(readmeCmd)
	readmeCmd.Flags().StringP("owner", "o", "", "Repository owner (required)")
	readmeCmd.Flags().StringP("repo", "r", "", "Repository name (required)")
	readmeCmd.Flags().StringP("branch", "b", domain.DefaultBranch, "Branch to sample files from")
	readmeCmd.Flags().Bool("raw", false, "Print only the generated markdown")
	readmeCmd.MarkFlagRequired("owner")
	readmeCmd.MarkFlagRequired("repo")
}
