package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/collegecounselor/counselor/page"
)

var (
	pageBaseURL string
	pageOutput  string
)

// pageCmd rewrites an HTML file, replacing images whose sources fail to
// load with labeled placeholder blocks.
var pageCmd = &cobra.Command{
	Use:   "page <file>",
	Short: "Replace broken images in an HTML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage,
}

func init() {
	pageCmd.Flags().StringVar(&pageBaseURL, "base", "", "base URL for resolving relative image sources")
	pageCmd.Flags().StringVarP(&pageOutput, "output", "o", "", "output file (default stdout)")
	pageCmd.MarkFlagRequired("base")

	rootCmd.AddCommand(pageCmd)
}

func runPage(cmd *cobra.Command, args []string) error {
	base, err := url.Parse(pageBaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	src, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	rewriter := page.NewRewriter(logger)
	out, err := rewriter.RewriteHTML(context.Background(), src, base)
	if err != nil {
		return fmt.Errorf("failed to rewrite page: %w", err)
	}

	if pageOutput == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(pageOutput, out, 0o644)
}
