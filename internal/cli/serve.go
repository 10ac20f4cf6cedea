package cli

import (
	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/config"
	"github.com/brendaninnis/uncluttered-cli/internal/db"
	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/router"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: "Serves the same search and recipe operations over HTTP, for use from\n" +
		"scripts or a local frontend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := cfg.CheckConfigEnvFields(); err != nil {
			return err
		}

		database, err := db.New(cfg)
		if err != nil {
			return err
		}

		searchProvider, err := ai.NewTavilyProvider(cfg)
		if err != nil {
			return err
		}
		extractionProvider, err := ai.NewExtractionProvider(cfg)
		if err != nil {
			return err
		}

		port := cfg.EnvVars.Port
		if servePort != "" {
			port = servePort
		}

		r := router.SetupRouter(cfg, database, searchProvider, extractionProvider)
		logger.Get().Info("starting server", zap.String("port", port))
		return r.Run(":" + port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides $PORT)")
	rootCmd.AddCommand(serveCmd)
}
