package main

import (
	"os"

	"github.com/pylint-tools/pylint-ruff-sync/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
