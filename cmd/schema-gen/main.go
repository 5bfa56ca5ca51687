package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/cfgbundle/internal/logger"
	"github.com/woozymasta/cfgbundle/internal/schemagen"
	"github.com/woozymasta/cfgbundle/internal/schemas"
	"github.com/woozymasta/cfgbundle/internal/vars"
)

type options struct {
	Name      string `short:"n" long:"name" description:"Go type to generate the schema for; also names the output file"`
	Input     string `short:"i" long:"input" description:"Go source file declaring the type"`
	OutputDir string `short:"o" long:"out-dir" default:"." description:"Directory the schema file is written to"`
	Chdir     string `short:"C" long:"chdir" description:"Resolve input and output paths against this directory"`
	Version   bool   `short:"v" long:"version" description:"Print version and exit"`

	logger.Logger `group:"Logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if opts.Version {
		vars.Print(os.Stdout)
		return
	}

	if opts.Name == "" || opts.Input == "" {
		fmt.Fprintln(os.Stderr, "Error: --name and --input are required")
		os.Exit(1)
	}

	opts.Logger.Setup()
	schemas.Register()

	schemagen.GenerateAndWriteSchema(schemagen.Options{
		Name:      opts.Name,
		Input:     opts.Input,
		OutputDir: opts.OutputDir,
		WorkDir:   opts.Chdir,
	})
}
