package main

import (
	"log"
	"os"

	"github.com/shauryashaurya/lkci/internal"
	"github.com/shauryashaurya/lkci/internal/cli"
	"github.com/shauryashaurya/lkci/internal/settings"
)

func main() {
	if err := settings.ReadDotenv(internal.DotEnvPath); err != nil {
		log.Fatal(err)
	}
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
