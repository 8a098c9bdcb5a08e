// Package main is the entry point for the gogen-api server.
package main

import (
	"os"

	"github.com/coccyx/gogen-api/cmd/gogen-api/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
