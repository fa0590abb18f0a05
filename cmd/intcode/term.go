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
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/chzyer/readline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// console is an interactive vm.InputSource. Every line may hold several values
// separated by commas or spaces; they are queued and consumed in order.
type console struct {
	rl      *readline.Instance
	pending vm.Queue
}

// consoleInput returns an interactive input if stdin is a terminal.
func consoleInput() (vm.InputSource, func(), bool) {
	if !readline.IsTerminal(int(os.Stdin.Fd())) {
		return nil, nil, false
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "? ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return nil, nil, false
	}
	return &console{rl: rl}, func() { rl.Close() }, true
}

func (c *console) Next() (*big.Int, error) {
	for c.pending.Len() == 0 {
		line, err := c.rl.Readline()
		switch {
		case err == io.EOF, err == readline.ErrInterrupt:
			return nil, errors.Wrap(vm.ErrInputExhausted, "console closed")
		case err != nil:
			return nil, errors.Wrap(err, "console read failed")
		}
		vals, err := vm.ParseString(line)
		if err != nil {
			// let the user try again
			fmt.Fprintln(c.rl.Stderr(), err)
			continue
		}
		c.pending.Push(vals...)
	}
	return c.pending.Next()
}
