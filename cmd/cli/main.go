package main

import (
	"fmt"
	"os"

	"github.com/crucial707/inventory/cmd/cli/products"
	"github.com/crucial707/inventory/cmd/cli/root"
	"github.com/crucial707/inventory/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	products.InitProducts(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
