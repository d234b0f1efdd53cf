package main

import (
	"os"

	"github.com/kwshi/stripcode-bot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
