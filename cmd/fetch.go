package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/collegecounselor/counselor/filter"
)

// profileCmd fetches the student profile through the resilient client.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the student profile",
	RunE:  runProfile,
}

// reportCmd fetches the full counseling report through the relay path.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the counseling report",
	Long: `Fetch the full counseling report via the local relay. When the relay or
the backend is down, the canned report is shown instead.`,
	RunE: runReport,
}

// recommendationsCmd lists college recommendations, optionally filtered.
var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "List college recommendations",
	RunE:  runRecommendations,
}

// journalCmd submits a journal entry for analysis.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Submit a journal entry",
	RunE:  runJournal,
}

func init() {
	recommendationsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", `filter expression, e.g. 'TrustScore > 80'`)
	journalCmd.Flags().StringVarP(&entryText, "entry", "e", "", "journal entry text")
	journalCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(recommendationsCmd)
	rootCmd.AddCommand(journalCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	result := client.Get(context.Background(), "profile")
	return printJSON(result)
}

func runReport(cmd *cobra.Command, args []string) error {
	result := relay.Call(context.Background(), "report", http.MethodGet, nil)
	return printJSON(result)
}

func runRecommendations(cmd *cobra.Command, args []string) error {
	payload := client.Get(context.Background(), "colleges/recommendations")
	recs := filter.FromPayload(payload)

	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		recs, err = f.Apply(recs)
		if err != nil {
			return err
		}
	}

	logger.Info().Int("count", len(recs)).Msg("recommendations")
	for _, rec := range recs {
		fmt.Printf("%-22s %-14s trust %3.0f  %s\n", rec.Name, rec.Location, rec.TrustScore, rec.Category)
	}
	return nil
}

func runJournal(cmd *cobra.Command, args []string) error {
	result := client.Post(context.Background(), "journal/entries", map[string]any{
		"text": entryText,
	})
	return printJSON(result)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
