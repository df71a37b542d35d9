package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/de-tools/shop-pulse/pkg/runtime/terminal"
	"github.com/de-tools/shop-pulse/pkg/services/config"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
	"github.com/de-tools/shop-pulse/pkg/store/shopify"
)

func main() {
	storesPath := os.Getenv("SHOPPULSE_STORES")
	if storesPath == "" {
		usr, _ := user.Current()
		storesPath = filepath.Join(usr.HomeDir, ".shoppulse", "stores.ini")
	}

	settings := config.DefaultSettings()
	registry, err := config.NewRegistry(storesPath, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	explorer := shop.NewExplorer(registry, shopify.Options{
		OrdersMaxPages:   settings.OrdersMaxPages,
		ProductsMaxPages: settings.ProductsMaxPages,
		PageDelay:        settings.PageDelay,
	})

	cli := terminal.NewCLI(terminal.Options{
		Explorer: explorer,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
