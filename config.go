package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jcorbin/gon/internal/op"
	"github.com/jcorbin/gon/internal/tape"
	"github.com/jcorbin/gon/internal/tapeio"
)

// config holds every setting of a gon invocation. A config file supplies
// defaults; command line flags override them.
type config struct {
	Output string `toml:"output"`

	Input  tapeio.InputMode `toml:"input"`
	Format tapeio.Format    `toml:"format"`

	Dialect  op.Dialect    `toml:"dialect"`
	Overflow tape.Overflow `toml:"overflow"`

	Timeout   time.Duration `toml:"timeout"`
	StepLimit uint64        `toml:"step_limit"`
	CellLimit uint          `toml:"cell_limit"`

	Trace bool `toml:"trace"`
	Dump  bool `toml:"dump"`

	Emit   string `toml:"emit"`
	Encode bool   `toml:"encode"`
}

type configOpenError struct{ error }

func (err configOpenError) Unwrap() error { return err.error }

// loadConfig decodes the TOML file at path over cfg; keys that name no
// setting are an error.
func loadConfig(path string, cfg *config) error {
	f, err := os.Open(path)
	if err != nil {
		return configOpenError{err}
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(cfg)
	if err != nil {
		return fmt.Errorf("invalid config %v: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("invalid config %v: unknown keys %v", path, strings.Join(keys, ", "))
	}
	return nil
}

// configPath finds a -config flag in args ahead of full flag parsing, so that
// the file's settings can become flag defaults.
func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if len(arg)-len(name) == 0 || len(arg)-len(name) > 2 {
			continue
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(name, "config=") {
			return name[len("config="):]
		}
	}
	return ""
}
