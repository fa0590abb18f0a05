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
	"io"
	"math/big"
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/olekukonko/tablewriter"
)

// flushOutput prints every value on its own line and flushes right away so
// that interactive programs show their output before asking for input.
type flushOutput struct {
	w *bufio.Writer
}

func (o flushOutput) Accept(v *big.Int) error {
	if _, err := fmt.Fprintln(o.w, v); err != nil {
		return err
	}
	return o.w.Flush()
}

// printStats renders the machine state as a table.
func printStats(w io.Writer, i *vm.Instance) {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetHeader([]string{"Register", "Value"})
	if i.Name() != "" {
		t.Append([]string{"name", i.Name()})
	}
	t.Append([]string{"state", i.State().String()})
	t.Append([]string{"pc", strconv.Itoa(i.PC)})
	if v, err := i.Read(i.PC); err == nil {
		t.Append([]string{"cell@pc", v.String()})
	}
	t.Append([]string{"relative base", i.RelativeBase().String()})
	t.Append([]string{"instructions", strconv.FormatInt(i.InstructionCount(), 10)})
	t.Append([]string{"memory", strconv.Itoa(i.MemoryLen())})
	if f := i.Fault(); f != nil {
		t.Append([]string{"fault opcode", f.Opcode.String()})
		t.Append([]string{"fault", f.Err.Error()})
	}
	t.Render()
}
