package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/strict-types/strict-encoding-sub000/internal/config"
	"github.com/strict-types/strict-encoding-sub000/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("configgen", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "stenc.toml", "output path for config template")
	validate := fs.Bool("validate", false, "validate an existing config file")
	input := fs.StringP("input", "i", "stenc.toml", "config path for validation")
	force := fs.BoolP("force", "f", false, "overwrite existing config file")
	printOnly := fs.Bool("print", false, "print the template to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *printOnly:
		_, err := fmt.Fprint(os.Stdout, config.Template())
		return err
	case *validate:
		if _, err := config.Load(*input); err != nil {
			return err
		}
		log.Info().Str("path", *input).Msg("validated stenc config")
		return nil
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	log.Info().Str("path", *output).Msg("wrote stenc config template")
	return nil
}
