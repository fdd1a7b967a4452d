package main

import (
	"os"

	"reactd/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
