package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "NUMCALC_"

var errNoExpr = errors.New("numcalc: no expression given")

type Config struct {
	Type     string
	LogLevel string
	Workers  int
	Dump     bool
	Batch    bool

	// Exprs holds the positional arguments. Each one is a whole RPN
	// expression; in batch mode they are ignored in favour of stdin.
	Exprs []string
}

func parseConfig(args []string, errOut io.Writer) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("numcalc", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: numcalc [flags] <expr>...\n\n")
		fmt.Fprintf(errOut, "Evaluates postfix expressions such as '2 sqrt 3 *'.\n")
		fmt.Fprintf(errOut, "Types: %s\n\n", strings.Join(typeNames(), " "))
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Type, "type", "f64", "number type to evaluate with")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "concurrent evaluations in batch mode")
	fs.BoolVar(&cfg.Dump, "dump", false, "dump the internal representation of each result to stderr")
	fs.BoolVar(&cfg.Batch, "batch", false, "read one expression per line from stdin")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Exprs = fs.Args()

	applyEnvOverrides(&cfg, fs)

	if _, ok := registry[cfg.Type]; !ok {
		return cfg, fmt.Errorf("numcalc: unknown type %q", cfg.Type)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if !cfg.Batch && len(cfg.Exprs) == 0 {
		fs.Usage()
		return cfg, errNoExpr
	}
	return cfg, nil
}

// applyEnvOverrides fills in any setting not given on the command line
// from the environment.
func applyEnvOverrides(cfg *Config, fs *flag.FlagSet) {
	if !isFlagSet(fs, "type") {
		cfg.Type = getEnvString("TYPE", cfg.Type)
	}
	if !isFlagSet(fs, "log-level") {
		cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	}
	if !isFlagSet(fs, "workers") {
		cfg.Workers = getEnvInt("WORKERS", cfg.Workers)
	}
	if !isFlagSet(fs, "dump") {
		cfg.Dump = getEnvBool("DUMP", cfg.Dump)
	}
	if !isFlagSet(fs, "batch") {
		cfg.Batch = getEnvBool("BATCH", cfg.Batch)
	}
}

func (c Config) Logger(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1" and "yes" as true and "false", "0" and "no"
// as false, in any case. Anything else leaves the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
