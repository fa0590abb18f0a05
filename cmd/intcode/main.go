// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

type runFlags struct {
	input   []string
	noun    int64
	verb    int64
	patches []string
	mem     int
	read    []int
	dump    bool
	stats   bool
	name    string
}

// parsePatch parses an addr=value pair.
func parsePatch(s string) (int, *big.Int, error) {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return 0, nil, errors.Errorf("invalid patch %q: expected addr=value", s)
	}
	addr, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, nil, errors.Wrapf(err, "invalid patch %q", s)
	}
	val, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
	if !ok {
		return 0, nil, errors.Errorf("invalid patch %q: bad value", s)
	}
	return addr, val, nil
}

func newLogger() *slog.Logger {
	lvl := slog.LevelInfo
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// options builds the VM options from the command line flags.
func (f *runFlags) options() ([]vm.Option, func(), error) {
	var (
		opts    []vm.Option
		cleanup = func() {}
	)
	if len(f.input) > 0 {
		in, err := vm.ParseString(strings.Join(f.input, ","))
		if err != nil {
			return nil, nil, errors.Wrap(err, "invalid --input")
		}
		q := new(vm.Queue)
		q.Push(in...)
		opts = append(opts, vm.Input(q))
	} else if in, closer, ok := consoleInput(); ok {
		opts = append(opts, vm.Input(in))
		cleanup = closer
	} else {
		opts = append(opts, vm.Input(vm.NewReaderInput(bufio.NewReader(os.Stdin))))
	}
	if f.noun >= 0 || f.verb >= 0 {
		if f.noun < 0 || f.verb < 0 {
			cleanup()
			return nil, nil, errors.New("--noun and --verb must be used together")
		}
		opts = append(opts, vm.NounVerb(f.noun, f.verb))
	}
	for _, p := range f.patches {
		addr, v, err := parsePatch(p)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, vm.Patch(addr, v))
	}
	if f.mem > 0 {
		opts = append(opts, vm.MemorySize(f.mem))
	}
	if f.name != "" {
		opts = append(opts, vm.Name(f.name))
	}
	opts = append(opts, vm.Logger(newLogger()))
	return opts, cleanup, nil
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		printStats(os.Stderr, i)
	}
	os.Exit(1)
}

func runCmd() *cobra.Command {
	f := runFlags{noun: -1, verb: -1}
	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Run an Intcode program",
		Long: `Run loads an Intcode program from a text file and runs it until it halts.

Values output by the program are printed one per line. Unless --input is
given, input values are read from the console.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var (
				i   *vm.Instance
				err error
			)
			stdout := bufio.NewWriter(os.Stdout)
			defer func() {
				stdout.Flush()
				atExit(i, err)
			}()

			img, err := vm.Load(args[0])
			if err != nil {
				return
			}
			opts, cleanup, err := f.options()
			if err != nil {
				return
			}
			defer cleanup()
			opts = append(opts, vm.Output(flushOutput{stdout}))
			if i, err = vm.New(img, opts...); err != nil {
				return
			}
			if err = i.Run(); err != nil {
				return
			}
			for _, addr := range f.read {
				var v *big.Int
				if v, err = i.Read(addr); err != nil {
					return
				}
				fmt.Fprintf(stdout, "[%d] %v\n", addr, v)
			}
			if f.dump {
				if err = i.Dump(stdout); err != nil {
					return
				}
			}
			if f.stats {
				stdout.Flush()
				printStats(os.Stderr, i)
			}
		},
	}
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.input, "input", "i", nil, "comma separated input `values` (disables console input)")
	fl.Int64Var(&f.noun, "noun", -1, "set address 1 to `noun` before running")
	fl.Int64Var(&f.verb, "verb", -1, "set address 2 to `verb` before running")
	fl.StringArrayVarP(&f.patches, "patch", "p", nil, "set memory cell before running, as `addr=value` (can be specified multiple times)")
	fl.IntVar(&f.mem, "mem", 0, "pre-extend memory to `size` cells")
	fl.IntSliceVarP(&f.read, "read", "r", nil, "print memory cells at `addresses` after the program halts")
	fl.BoolVar(&f.dump, "dump", false, "dump memory upon exit")
	fl.BoolVar(&f.stats, "stats", false, "print machine state upon exit")
	fl.StringVar(&f.name, "name", "", "machine `name` used in debug logs")
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "intcode",
		Short: "Intcode virtual machine",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug diagnostics")
	rootCmd.AddCommand(runCmd(), searchCmd(), ampCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
