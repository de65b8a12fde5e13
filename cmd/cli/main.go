package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/de-tools/ads-atlas/pkg/runtime/terminal"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		var reqErr *ads.RequestError
		if errors.As(err, &reqErr) {
			fmt.Fprintln(os.Stderr, reqErr.Diagnostic())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
