package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cellux/ptscheme"
	"golang.org/x/term"
)

const defaultConfigFile = "~/.ptscheme.yml"

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

// loadConfig picks the configuration file from the flag, the environment or
// the user's home directory, in that order. A missing default file is not an
// error.
func loadConfig(path string) (*ptscheme.Config, error) {
	if path == "" {
		path = os.Getenv("PTSCHEME_CONFIG")
	}
	if path != "" {
		return ptscheme.LoadConfig(path)
	}
	cfg, err := ptscheme.LoadConfig(defaultConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		return ptscheme.DefaultConfig(), nil
	}
	return cfg, err
}

func main() {
	configPath := flag.String("config", "", "configuration file")
	expr := flag.String("e", "", "evaluate `expr` and print the result")
	verbose := flag.Bool("v", false, "log interpreter activity to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "ptscheme: ", 0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		die("Error loading configuration: %v\n", err)
	}
	if *verbose {
		cfg.Log.Verbose = true
	}
	if cfg.Path != "" && cfg.Log.Verbose {
		logger.Printf("using configuration %s", cfg.Path)
	}

	opts := []ptscheme.Option{ptscheme.WithConfig(cfg)}
	if cfg.Log.Verbose {
		opts = append(opts, ptscheme.WithLogger(logger))
	}
	vm, err := ptscheme.NewVM(opts...)
	if err != nil {
		die("Error creating VM: %v\n", err)
	}

	for _, arg := range flag.Args() {
		if err := vm.LoadFile(arg); err != nil {
			die("Error while loading %v\n", err)
		}
	}

	if *expr != "" {
		result, err := vm.LoadString(*expr)
		if err != nil {
			die("%v\n", err)
		}
		fmt.Println(ptscheme.Repr(result))
		if ptscheme.IsError(result) {
			os.Exit(1)
		}
		return
	}
	if flag.NArg() > 0 {
		return
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		os.Exit(runREPL(vm, cfg.REPL))
	}
	if err := loadStdin(vm, os.Stdin); err != nil {
		die("Error while loading from stdin: %v\n", err)
	}
}

func loadStdin(vm *ptscheme.VM, r io.Reader) error {
	result, err := vm.Load(r)
	if err != nil {
		return err
	}
	if e, ok := result.(*ptscheme.Error); ok {
		return e
	}
	return nil
}

func isCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), ":")
}
