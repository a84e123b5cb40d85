package main

import (
	"os"

	"github.com/fieldflow/bookd/adapter/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
