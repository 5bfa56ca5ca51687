package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/woozymasta/cfgbundle/internal/bundle"
	"github.com/woozymasta/cfgbundle/internal/config"
	"github.com/woozymasta/cfgbundle/internal/logger"
	"github.com/woozymasta/cfgbundle/internal/metrics"
	"github.com/woozymasta/cfgbundle/internal/reexport"
	"github.com/woozymasta/cfgbundle/internal/schemagen"
	"github.com/woozymasta/cfgbundle/internal/schemas"
	"github.com/woozymasta/cfgbundle/internal/signals"
	"github.com/woozymasta/cfgbundle/internal/vars"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts struct {
		Config  string `short:"c" long:"config" env:"CFGBUNDLE_CONFIG" default:"cfgbundle.yaml" description:"Path to build configuration file (YAML or JSON)"`
		Version bool   `short:"v" long:"version" description:"Print version and exit"`

		logger.Logger `group:"Logging"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		// go-flags returns an error even for --help; in that case do not treat
		// it as a failure exit code.
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	if opts.Version {
		vars.Print(os.Stdout)
		return nil
	}

	opts.Logger.Setup()

	log.Debug().
		Str("config_path", opts.Config).
		Str("version", vars.Version).
		Msg("CLI options parsed")

	ctx, stop := signals.WithSignalContext(context.Background())
	defer stop()

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("cfgbundle: load config: %w", err)
	}

	return build(ctx, afero.NewOsFs(), cfg)
}

// build runs the configured plugins and writes the bundle to cfg.OutDir.
func build(ctx context.Context, fs afero.Fs, cfg *config.BuildConfig) error {
	metrics.Init()
	schemas.Register()

	plugins := make([]bundle.Plugin, 0, len(cfg.Schemas)+1)
	for _, job := range cfg.Schemas {
		plugins = append(plugins, schemagen.Plugin(schemagen.Options{
			Name:      job.Name,
			Input:     job.Input,
			OutputDir: job.OutputDir,
			WorkDir:   cfg.BaseDir,
			Fs:        fs,
		}))
	}
	plugins = append(plugins, reexport.New(&reexport.Options{
		ConfigFiles: cfg.ConfigFiles,
		SrcDir:      cfg.SrcDir,
		Fs:          fs,
	}))

	out, err := bundle.NewBuilder(bundle.OutputOptions{Dir: cfg.OutDir}, plugins...).Build(ctx)
	if err != nil {
		return fmt.Errorf("cfgbundle: build: %w", err)
	}

	written, err := bundle.Write(fs, cfg.OutDir, out)
	if err != nil {
		return fmt.Errorf("cfgbundle: write bundle: %w", err)
	}

	log.Info().
		Str("out_dir", cfg.OutDir).
		Int("files", len(written)).
		Msg("Bundle written")

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("cfgbundle: %w", err)
		}
	}

	return nil
}
