package main

import (
	"os"

	"github.com/cchawn/toolbox/internal/commands"
)

func main() {
	if err := commands.NewBudgetCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
