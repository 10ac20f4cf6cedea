package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [search-term]",
	Short: "List saved recipes",
	Long: "Without arguments, lists every saved search term with its recipe count.\n" +
		"With a search term, lists the recipes saved under it ranked by trust\n" +
		"score, and lets you pick one to view.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return listSearchTerms(a)
		}
		return listRecipes(a, strings.Join(args, " "))
	},
}

func listSearchTerms(a *app) error {
	counts, err := a.recipes.GetSearchTermCounts()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No saved recipes yet. Try 'uncluttered search <query>'.")
		return nil
	}

	fmt.Println(headerStyle.Render("Saved searches"))
	for _, c := range counts {
		fmt.Printf("  %s %s\n", c.SearchTerm, dimStyle.Render(fmt.Sprintf("(%d)", c.Count)))
	}
	return nil
}

func listRecipes(a *app, searchTerm string) error {
	recipes, err := a.recipes.GetRecipesBySearchTerm(searchTerm)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		fmt.Printf("No recipes saved for %q.\n", searchTerm)
		return nil
	}

	fmt.Println(renderRecipeTable(recipes))

	if !stdinIsTerminal() {
		return nil
	}

	fmt.Printf("\nEnter a number to view a recipe (or press Enter to skip): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	pick, err := strconv.Atoi(line)
	if err != nil || pick < 1 || pick > len(recipes) {
		return fmt.Errorf("pick a number between 1 and %d", len(recipes))
	}

	fmt.Println()
	fmt.Println(renderRecipeDetail(&recipes[pick-1]))
	return nil
}

// stdinIsTerminal reports whether stdin is interactive, so piped input
// never hangs on the selection prompt.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func init() {
	rootCmd.AddCommand(listCmd)
}
