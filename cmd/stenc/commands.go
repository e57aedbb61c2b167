package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/strict-types/strict-encoding-sub000/container"
	"github.com/strict-types/strict-encoding-sub000/strict"
	"golang.org/x/term"
)

func (e env) types(args []string) error {
	fs := pflag.NewFlagSet("types", pflag.ContinueOnError)
	format := fs.StringP("format", "f", e.cfg.Output.Format, "output format: yaml|cbor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc := e.registry.Document()
	switch *format {
	case "yaml":
		out, err := doc.EncodeYAML()
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(out)
		return err
	case "cbor":
		out, err := doc.EncodeCBOR()
		if err != nil {
			return err
		}
		return e.writeBinary(out)
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}
}

// writeBinary prints hex instead of raw bytes when stdout is a terminal.
func (e env) writeBinary(p []byte) error {
	if f, ok := e.stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprintln(e.stdout, hex.EncodeToString(p))
		return err
	}
	_, err := e.stdout.Write(p)
	return err
}

func (e env) inspect(args []string) error {
	path, err := singleFile("inspect", args)
	if err != nil {
		return err
	}
	c, err := container.InspectFile(path, e.limits())
	if err != nil {
		return err
	}
	h := c.Header
	name := "(unnamed)"
	if h.Type != "" {
		name = h.Lib + "." + h.Type
	}
	fmt.Fprintf(e.stdout, "type:     %s\n", name)
	fmt.Fprintf(e.stdout, "semid:    %s\n", h.SemID)
	fmt.Fprintf(e.stdout, "max_len:  %d\n", h.MaxLen)
	fmt.Fprintf(e.stdout, "payload:  %d bytes\n", len(c.Payload))
	fmt.Fprintf(e.stdout, "checksum: %s\n", hex.EncodeToString(h.Checksum[:]))
	if t, ok := e.registry.LookupID(h.SemID); ok {
		fmt.Fprintf(e.stdout, "known:    %s\n", t.Key())
	}
	return nil
}

func (e env) verify(args []string) error {
	path, err := singleFile("verify", args)
	if err != nil {
		return err
	}
	c, err := container.InspectFile(path, e.limits())
	if err != nil {
		return err
	}
	h := c.Header
	if h.Type == "" {
		if t, ok := e.registry.LookupID(h.SemID); ok {
			fmt.Fprintf(e.stdout, "ok %s\n", t.Key())
			return nil
		}
		fmt.Fprintf(e.stdout, "ok (unnamed %s)\n", h.SemID)
		return nil
	}
	t, ok := e.registry.Lookup(h.Lib, h.Type)
	if !ok {
		return fmt.Errorf("verify %s: type %s.%s is not registered", path, h.Lib, h.Type)
	}
	if err := c.Verify(t); err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	log.Debug().Str("path", path).Str("type", t.Key()).Msg("container verified")
	fmt.Fprintf(e.stdout, "ok %s\n", t.Key())
	return nil
}

func (e env) dump(args []string) error {
	path, err := singleFile("dump", args)
	if err != nil {
		return err
	}
	c, err := container.InspectFile(path, e.limits())
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.stdout, hex.Dump(c.Payload))
	return err
}

func (e env) encode(args []string) error {
	fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	kind := fs.StringP("kind", "k", "u8", "value kind: u8|u16|u32|u64|i8|i16|i32|i64|bool|string|bytes")
	output := fs.StringP("output", "o", "", "write a container to this path instead of printing hex")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: encode takes exactly one value", errUsage)
	}
	v, err := parseValue(*kind, fs.Arg(0))
	if err != nil {
		return err
	}

	if *output != "" {
		return container.WriteFile(*output, v, e.cfg.Limits.MaxSeal)
	}
	out, err := strict.Serialize(v, int(min(e.cfg.Limits.MaxSeal, strict.MaxU32)))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, hex.EncodeToString(out))
	return err
}

func parseValue(kind, raw string) (strict.Encoder, error) {
	switch kind {
	case "u8", "u16", "u32", "u64":
		bits, _ := strconv.Atoi(kind[1:])
		n, err := strconv.ParseUint(raw, 0, bits)
		if err != nil {
			return nil, err
		}
		switch bits {
		case 8:
			return strict.U8(n), nil
		case 16:
			return strict.U16(n), nil
		case 32:
			return strict.U32(n), nil
		}
		return strict.U64(n), nil
	case "i8", "i16", "i32", "i64":
		bits, _ := strconv.Atoi(kind[1:])
		n, err := strconv.ParseInt(raw, 0, bits)
		if err != nil {
			return nil, err
		}
		switch bits {
		case 8:
			return strict.I8(n), nil
		case 16:
			return strict.I16(n), nil
		case 32:
			return strict.I32(n), nil
		}
		return strict.I64(n), nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return strict.Bool(b), nil
	case "string":
		return strict.NewString[strict.Medium](raw)
	case "bytes":
		p, err := hex.DecodeString(raw)
		if err != nil {
			return nil, err
		}
		return strict.NewBytes[strict.Medium](p)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", errUsage, kind)
	}
}
