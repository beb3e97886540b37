package main

import (
	"fmt"
	"os"

	"github.com/babarot/rmtrash/internal/cli"
)

const appName = "rmtrash"

var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	v := cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}
	if err := cli.Run(v, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
