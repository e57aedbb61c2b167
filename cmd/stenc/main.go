package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/strict-types/strict-encoding-sub000/container"
	"github.com/strict-types/strict-encoding-sub000/internal/config"
	"github.com/strict-types/strict-encoding-sub000/internal/observability"
	"github.com/strict-types/strict-encoding-sub000/schema"
)

const usage = `usage: stenc [--config FILE] <command> [args]

commands:
  types    export the registered type library (yaml or cbor)
  inspect  print a container header
  verify   check a container's checksum and type against the registry
  dump     hex dump a container payload
  encode   encode a primitive value, as hex or into a container
           (put -- before a negative value: encode -k i8 -- -1)
`

var errUsage = errors.New("invalid usage")

// env carries what every command needs.
type env struct {
	cfg      config.Config
	registry *schema.Registry
	stdout   io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("stenc", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	configPath := fs.StringP("config", "c", "", "path to stenc.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	observability.InitLogger("stenc", cfg.Logging())

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	e := env{cfg: cfg, registry: schema.Default, stdout: stdout}
	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "types":
		return e.types(cmdArgs)
	case "inspect":
		return e.inspect(cmdArgs)
	case "verify":
		return e.verify(cmdArgs)
	case "dump":
		return e.dump(cmdArgs)
	case "encode":
		return e.encode(cmdArgs)
	case "help":
		_, err := fmt.Fprint(stdout, usage)
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (e env) limits() container.Limits {
	return container.Limits{MaxPayloadBytes: e.cfg.Limits.MaxPayload}
}

func singleFile(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: %s takes exactly one file", errUsage, name)
	}
	return args[0], nil
}
