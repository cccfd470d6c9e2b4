package main

import (
	"os"

	"github.com/marbleseoul/server/cmd/rankview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
