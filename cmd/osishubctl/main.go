package main

import (
	"fmt"
	"os"

	"github.com/osishub/osishub/internal/app/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
