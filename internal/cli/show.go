package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a saved recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		recipe, err := a.recipes.GetRecipeBySlug(args[0])
		if err != nil {
			return err
		}

		fmt.Println(renderRecipeDetail(recipe))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
