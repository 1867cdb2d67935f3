package main

import (
	"os"

	"github.com/katalvlaran/ocrolath/internal/cli"
	_ "github.com/katalvlaran/ocrolath/recognize/tesseract"
)

var version = "dev"

func main() {
	if err := cli.New(version).Run(); err != nil {
		os.Exit(1)
	}
}
