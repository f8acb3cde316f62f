package main

import (
	"context"
	"flag"
	"os"

	drollcmd "github.com/erikjuhani/droll/internal/cmd/droll"
	"github.com/erikjuhani/droll/internal/platform/config"
)

func main() {
	cfg, err := drollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := drollcmd.Run(context.Background(), cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("%v", err)
	}
}
