package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/geange/dfamin/internal/cli"
)

func main() {
	if err := cli.Run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "dfamin: %s\n", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "dfamin: %v\n", err)
		os.Exit(cli.ExitFailure)
	}
}
