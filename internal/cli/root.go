package cli

import (
	"fmt"
	"os"

	"github.com/brendaninnis/uncluttered-cli/internal/config"
	"github.com/brendaninnis/uncluttered-cli/internal/db"
	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/repository"
	"github.com/brendaninnis/uncluttered-cli/internal/service"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "uncluttered",
	Short: "Recipe search without the life stories",
	Long: "Searches the web for recipes, extracts just the recipe from each page,\n" +
		"scores how trustworthy it looks, and saves everything locally.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// app bundles the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	repo    repository.RecipeRepo
	recipes *service.RecipeService
}

// newApp loads configuration and opens the database.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		return nil, err
	}

	database, err := db.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := repository.NewRecipeRepository(database)
	return &app{
		cfg:     cfg,
		repo:    repo,
		recipes: service.NewRecipeService(repo),
	}, nil
}
