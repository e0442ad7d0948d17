package main

import (
	"fmt"
	"os"

	"github.com/goodphonefoundation/thecloudsucks/internal/bootstrap"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "showcase-search: %v\n", err)
		return 1
	}
	return 0
}
