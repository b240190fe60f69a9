package main

import (
	"os"

	"github.com/qop-dev/qop/cmd/qop/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
