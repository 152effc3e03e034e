package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/imgpipe/imgpipe/internal/cli"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env with IMGPIPE_* overrides; a missing file is fine.
	_ = godotenv.Load()

	os.Exit(cli.Execute(version))
}
