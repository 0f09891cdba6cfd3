// Package main provides the json-distiller command line tool.
package main

import (
	"os"

	"github.com/jacobprice808/json-distiller/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
