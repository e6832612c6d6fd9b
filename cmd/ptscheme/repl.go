package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cellux/ptscheme"
	"github.com/peterh/liner"
)

const banner = "ptscheme REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func runREPL(vm *ptscheme.VM, cfg ptscheme.REPLConfig) int {
	if cfg.Banner {
		fmt.Println(banner)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if cfg.HistoryFile != "" {
		histPath = ptscheme.ExpandHome(cfg.HistoryFile)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		input, ok := readInput(vm, ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if isCommand(input) {
			switch strings.ToLower(strings.TrimSpace(input)) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if err := evalAndPrint(vm, input, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

// readInput prompts until the collected lines form complete data. The
// second result is false when the user asked to leave.
func readInput(vm *ptscheme.VM, ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if inputComplete(vm, src) {
			return src, true
		}
	}
}

// inputComplete reports whether src can be read with the VM's reader
// settings without running out of input in the middle of a datum.
func inputComplete(vm *ptscheme.VM, src string) bool {
	rd := vm.NewReader(strings.NewReader(src))
	for {
		form, err := rd.Read()
		if err != nil {
			return true
		}
		if ptscheme.IsIncomplete(form) {
			return false
		}
	}
}

// evalAndPrint evaluates every datum of src in the global environment and
// writes each result to w. Errors are printed and end the input; the VM
// stays usable.
func evalAndPrint(vm *ptscheme.VM, src string, w io.Writer) error {
	rd := vm.NewReader(strings.NewReader(src))
	for {
		form, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ptscheme.IsError(form) {
			fmt.Fprintln(w, ptscheme.Repr(form))
			return nil
		}
		result, err := vm.EvalGlobal(form)
		if err != nil {
			fmt.Fprintln(w, err)
			return nil
		}
		fmt.Fprintln(w, ptscheme.Repr(result))
	}
}
