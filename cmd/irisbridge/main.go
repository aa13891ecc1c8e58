package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/funvibe/irisbridge/internal/bridge"
	"github.com/funvibe/irisbridge/internal/config"
	"github.com/funvibe/irisbridge/internal/host"
	"github.com/funvibe/irisbridge/internal/value"
)

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[39m"
)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	exit   func(int)
	color  bool
	cfg    *config.Config
	log    *zap.SugaredLogger
}

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr, exit: os.Exit}
	os.Exit(c.run(os.Args[1:]))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: irisbridge [-config file] [-log-level level] <command> [file]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  render <file>   print every value of a YAML value document\n")
	fmt.Fprintf(w, "  box <file>      box every value and print its host layout\n")
	fmt.Fprintf(w, "  version         print the version\n")
}

func (c *cli) run(args []string) int {
	fs := flag.NewFlagSet("irisbridge", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { usage(c.stderr) }
	configPath := fs.String("config", "", "path to "+config.ConfigFileName)
	logLevel := fs.String("log-level", "", "override log_level")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) == 0 {
		usage(c.stderr)
		return 1
	}

	if rest[0] == "version" {
		fmt.Fprintf(c.stdout, "irisbridge %s\n", config.Version)
		return 0
	}

	if err := c.setup(*configPath, *logLevel); err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	defer c.log.Sync() //nolint:errcheck

	switch rest[0] {
	case "render", "box":
		if len(rest) != 2 {
			fmt.Fprintf(c.stderr, "Usage: irisbridge %s <file>\n", rest[0])
			return 1
		}
		values, err := loadValues(rest[1])
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %s\n", err)
			return 1
		}
		if rest[0] == "render" {
			return c.render(values)
		}
		return c.box(values)
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n", rest[0])
		usage(c.stderr)
		return 1
	}
}

func (c *cli) setup(configPath, logLevel string) error {
	if configPath == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return err
		}
		configPath = found
	}

	c.cfg = config.Default()
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	if logLevel != "" {
		c.cfg.LogLevel = logLevel
	}

	log, err := config.NewLogger(c.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	c.log = log
	c.color = c.useColor()
	return nil
}

func (c *cli) useColor() bool {
	switch c.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := c.stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *cli) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + ansiReset
}

func loadValues(path string) ([]*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	values, err := value.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

func (c *cli) render(values []*value.Value) int {
	b := bridge.FromConfig(c.cfg, c.log)
	for _, v := range values {
		fmt.Fprintln(c.stdout, b.Render(v))
	}
	return 0
}

func (c *cli) box(values []*value.Value) int {
	b := bridge.New(bridge.Options{
		Heap:        host.NewHeap(host.Options{MaxBlocks: c.cfg.MaxBlocks}),
		Logger:      c.log,
		NullPolicy:  c.cfg.NullPolicy,
		Exit:        c.exit,
		Diagnostics: c.stderr,
	})

	status := 0
	for _, v := range values {
		var word host.Word
		if c.cfg.OnUnsupported == config.UnsupportedExit {
			word = b.MustBox(v)
		} else {
			var err error
			if word, err = b.Box(v); err != nil {
				fmt.Fprintln(c.stderr, c.paint(ansiRed, fmt.Sprintf("%s: %s", b.Render(v), err)))
				if !errors.Is(err, bridge.ErrUnsupportedConversion) {
					c.log.Warnw("box failed", "error", err)
				}
				status = 1
				continue
			}
		}

		out, err := b.Heap().Format(word)
		if err != nil {
			// only reachable when exit did not terminate
			return config.FatalExitCode
		}
		fmt.Fprintf(c.stdout, "%s -> %s\n", b.Render(v), c.paint(ansiGreen, out))
	}

	st := b.Heap().Stats()
	c.log.Debugw("heap", "allocations", st.Allocations, "doubles", st.DoubleAllocations, "live", st.Live)
	return status
}
