package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	deleteSearchTerm string
	deleteAll        bool
	deleteYes        bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [slug]",
	Short: "Delete saved recipes",
	Long: "Deletes a single recipe by slug, every recipe under a search term\n" +
		"(--search-term), or the entire collection (--all). Exactly one target\n" +
		"must be given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := 0
		if len(args) == 1 {
			targets++
		}
		if deleteSearchTerm != "" {
			targets++
		}
		if deleteAll {
			targets++
		}
		if targets != 1 {
			return fmt.Errorf("specify exactly one of a slug, --search-term, or --all")
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		switch {
		case len(args) == 1:
			if err := a.recipes.DeleteRecipeBySlug(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %q.\n", args[0])
		case deleteSearchTerm != "":
			count, err := a.recipes.DeleteRecipesBySearchTerm(deleteSearchTerm)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d recipe(s) for %q.\n", count, deleteSearchTerm)
		case deleteAll:
			if !deleteYes && !confirm("Delete ALL saved recipes?") {
				fmt.Println("Aborted.")
				return nil
			}
			count, err := a.recipes.DeleteAllRecipes()
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d recipe(s).\n", count)
		}
		return nil
	},
}

// confirm asks a yes/no question on the terminal, defaulting to no.
func confirm(question string) bool {
	if !stdinIsTerminal() {
		return false
	}
	fmt.Printf("%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.Flags().StringVar(&deleteSearchTerm, "search-term", "", "delete every recipe saved under this search term")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every saved recipe")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
