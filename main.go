package main

import (
	"os"

	"github.com/ChheanSilapin/yt-tool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
