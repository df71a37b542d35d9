package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/shop-pulse/pkg/server"
	"github.com/de-tools/shop-pulse/pkg/services/config"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
	"github.com/de-tools/shop-pulse/pkg/store/shopify"
)

var (
	storesPath   string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Shop Pulse web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := filepath.Join(usr.HomeDir, ".shoppulse", "stores.ini")

	rootCmd.Flags().StringVarP(&storesPath, "stores", "c", defaultPath,
		"Path to the stores ini file (default is $HOME/.shoppulse/stores.ini)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "",
		"Path to the settings file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	registry, err := config.NewRegistry(storesPath, settings)
	if err != nil {
		return fmt.Errorf("failed to create store registry: %w", err)
	}

	explorer := shop.NewExplorer(registry, shopify.Options{
		OrdersMaxPages:   settings.OrdersMaxPages,
		ProductsMaxPages: settings.ProductsMaxPages,
		PageDelay:        settings.PageDelay,
	})

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", storesPath)
	stores, _ := explorer.ListStores(ctx)
	for _, store := range stores {
		logger.Info().Msgf("Store: `%s`", store.Name)
	}

	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		settings.Addr = addr
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Addr,
		ShutdownTimeout: settings.ShutdownTimeout,
		CacheTTL:        settings.CacheTTL,
		Dependencies: server.Dependencies{
			Shop: explorer,
		},
	})

	return api.Start()
}
