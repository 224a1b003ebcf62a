// Package main provides the bookdim CLI application.
// bookdim integrates raw book data from multiple sources into a single
// deduplicated dimension with full traceability.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	// A .env file is optional; it carries BOOKDIM_* overrides in dev
	// environments.
	_ = godotenv.Load()

	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
