package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	fetchCount   int
	displayCount int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the web for recipes and save the best ones",
	Long: "Searches the web for the query, extracts a structured recipe from each\n" +
		"result, saves every successful extraction, and shows the top recipes\n" +
		"ranked by trust score.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fetchCount < 1 {
			return fmt.Errorf("--fetch must be at least 1")
		}
		if displayCount < 1 {
			return fmt.Errorf("--display must be at least 1")
		}
		query := strings.Join(args, " ")

		a, err := newApp()
		if err != nil {
			return err
		}

		searchProvider, err := ai.NewTavilyProvider(a.cfg)
		if err != nil {
			return err
		}
		extractionProvider, err := ai.NewExtractionProvider(a.cfg)
		if err != nil {
			return err
		}

		pipeline := service.NewPipelineService(a.cfg, a.repo, searchProvider, extractionProvider)

		fmt.Printf("Searching for %q...\n", query)
		recipes, sourceErrs, err := pipeline.Run(cmd.Context(), query, fetchCount, displayCount)
		if err != nil {
			return err
		}

		for _, srcErr := range sourceErrs {
			fmt.Fprintf(os.Stderr, "Skipped %s: %v\n", srcErr.URL, srcErr.Err)
		}

		fmt.Println(renderRecipeTable(recipes))
		fmt.Printf("Showing top %d recipe(s). Run 'uncluttered show <slug>' for details.\n", len(recipes))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&fetchCount, "fetch", 5, "number of search results to fetch and extract")
	searchCmd.Flags().IntVar(&displayCount, "display", 3, "number of top-ranked recipes to display")
	rootCmd.AddCommand(searchCmd)
}
