package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-assistant/internal/usecase"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Collects repository metrics and outputs as JSON",
	Long:  `Collects contributors, weekly commit activity, language shares and issue counts of a repository and outputs them in JSON format.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")

		svc, err := loadServices(cmd, logger)
		exitOnError("Failed to initialize", err)

		visualizer := usecase.NewRepoVisualizer(svc.fetcher, logger)
		result, err := visualizer.Visualize(ctx, owner, repo)
		exitOnError("Failed to visualize repository", err)

		exitOnError("Failed to print metrics", printJSON(result))
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
	visualizeCmd.Flags().StringP("owner", "o", "", "Repository owner (required)")
	visualizeCmd.Flags().StringP("repo", "r", "", "Repository name (required)")
	visualizeCmd.MarkFlagRequired("owner")
	visualizeCmd.MarkFlagRequired("repo")
}
