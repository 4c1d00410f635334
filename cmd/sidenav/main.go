package main

import (
	"fmt"
	"os"

	"github.com/MrSnakeDoc/sidenav/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ sidenav: %v\n", err)
		os.Exit(1)
	}
}
