package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-assistant/internal/domain"
	"github.com/naka-gawa/github-assistant/internal/usecase"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Reviews a GitHub profile and outputs as JSON",
	Long:  `Collects the public profile, repositories and recent activity of a GitHub user, asks the language model for a scored review and outputs the result in JSON format.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		username, _ := cmd.Flags().GetString("user")

		svc, err := loadServices(cmd, logger)
		exitOnError("Failed to initialize", err)

		reviewer := usecase.NewProfileReviewer(svc.fetcher, svc.completer, logger)
		review, err := reviewer.Review(ctx, username)
		if err != nil {
			// Still print what was collected when only the model reply was unusable.
			if errors.Is(err, domain.ErrAnalysisParse) && review != nil {
				_ = printJSON(map[string]any{"error": err.Error(), "profileData": review.ProfileData})
			}
			fmt.Fprintf(os.Stderr, "Failed to review profile: %v\n", err)
			os.Exit(1)
		}

		exitOnError("Failed to print review", printJSON(review))
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	profileCmd.MarkFlagRequired("user")
}
