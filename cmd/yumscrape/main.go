// Package main is the entry point for the yumscrape CLI.
package main

import (
	"os"

	"github.com/jmylchreest/yumscrape/cmd/yumscrape/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
