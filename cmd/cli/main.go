package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kika-project/kika-sampling/cmd/cli/cmd"
	"github.com/kika-project/kika-sampling/pkg/config"
)

func main() {
	// A local .env wins over the one in the config directory; godotenv
	// never overrides variables that are already set.
	_ = godotenv.Load()
	if dir, err := config.Dir(); err == nil {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
