// Package main provides the CLI entrypoint for fixturegen.
//
// fixturegen loads a Go package, synthesizes values of one of its types and
// prints them as YAML documents or spew dumps:
//
//	fixturegen -pkg fixture-generator/store -type Order -count 3
//
// FIXTUREGEN_MAX_DEPTH, FIXTUREGEN_LOG_LEVEL and FIXTUREGEN_UNEXPORTED set
// the defaults of the matching flags.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:], env.ToMap(os.Environ()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "fixturegen:", err)
		os.Exit(2)
	}

	if err := Run(cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "fixturegen:", err)
		os.Exit(1)
	}
}
