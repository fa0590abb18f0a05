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

package vm

import (
	"io"
	"log/slog"
	"math/big"
	"os"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// State is the execution state of an Instance.
type State int

// Instance states. Halted and Faulted are terminal.
const (
	Ready State = iota
	Running
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int // Program Counter (aka. Instruction Pointer)
	rb       *big.Int
	mem      *Memory
	state    State
	fault    *Fault
	insCount int64
	input    InputSource
	output   OutputSink
	name     string
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// Input sets the input source consumed by input instructions. The default is
// to read decimal integers from os.Stdin.
func Input(in InputSource) Option {
	return func(i *Instance) error {
		i.input = in
		return nil
	}
}

// Output sets the output sink fed by output instructions. The default prints
// every value on its own line to os.Stdout.
func Output(out OutputSink) Option {
	return func(i *Instance) error {
		i.output = out
		return nil
	}
}

// Patch overwrites the memory cell at address addr with v. It can only be used
// before the first Step.
func Patch(addr int, v *big.Int) Option {
	return func(i *Instance) error {
		return i.Write(addr, v)
	}
}

// NounVerb sets the cells at address 1 and 2 to noun and verb respectively.
func NounVerb(noun, verb int64) Option {
	return func(i *Instance) error {
		if err := i.Write(1, big.NewInt(noun)); err != nil {
			return err
		}
		return i.Write(2, big.NewInt(verb))
	}
}

// MemorySize pre-extends the memory to size cells. This is only an
// optimization: memory grows on demand regardless.
func MemorySize(size int) Option {
	return func(i *Instance) error {
		if size < 0 {
			return errors.Errorf("invalid memory size %d", size)
		}
		if size > i.mem.Len() {
			i.mem.reserve(size)
		}
		return nil
	}
}

// Logger sets the logger used for per-instruction debug traces. Nothing is
// logged by default.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		i.log = l
		return nil
	}
}

// Name sets the machine name reported in log records and diagnostics.
func Name(name string) Option {
	return func(i *Instance) error {
		i.name = name
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	if i.fault != nil {
		return i.fault
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The image parameter is the initial memory contents. It is copied, so the
// same image can be used to create any number of instances.
//
// Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		rb:  new(big.Int),
		mem: NewMemory(image, 0),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.input == nil {
		i.input = NewReaderInput(os.Stdin)
	}
	if i.output == nil {
		i.output = NewWriterOutput(os.Stdout)
	}
	if i.log == nil {
		i.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if i.name != "" {
		i.log = i.log.With("vm", i.name)
	}
	return i, nil
}

// State returns the execution state.
func (i *Instance) State() State {
	return i.state
}

// Running returns true until the machine has halted or faulted.
func (i *Instance) Running() bool {
	return i.state == Ready || i.state == Running
}

// Fault returns the fault that stopped the machine, or nil.
func (i *Instance) Fault() *Fault {
	return i.fault
}

// RelativeBase returns a copy of the relative base register.
func (i *Instance) RelativeBase() *big.Int {
	return new(big.Int).Set(i.rb)
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Name returns the machine name.
func (i *Instance) Name() string {
	return i.name
}

// MemoryLen returns the current memory extent.
func (i *Instance) MemoryLen() int {
	return i.mem.Len()
}

// Read returns a copy of the memory cell at address addr. It does not extend
// the memory: cells beyond the current extent read as zero.
func (i *Instance) Read(addr int) (*big.Int, error) {
	return i.mem.Peek(addr)
}

// Write sets the memory cell at address addr. Writes are only allowed before
// the first Step.
func (i *Instance) Write(addr int, v *big.Int) error {
	if i.state != Ready {
		return errors.Wrapf(ErrNotRunning, "write to address %d in state %v", addr, i.state)
	}
	return i.mem.Write(addr, v)
}

// Memory returns a copy of the whole memory. It fails with
// ErrSnapshotTooLarge if the memory extent is greater than MaxSnapshotLen.
func (i *Instance) Memory() (Image, error) {
	return i.mem.Image()
}

// Dump writes the memory contents as comma separated program text to w. The
// same size limit as for Memory applies.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	if _, err := i.mem.WriteTo(ew); err != nil {
		return err
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}

// Run steps the machine until it halts or faults. It returns nil if the
// machine halted and the *Fault otherwise.
func (i *Instance) Run() error {
	for i.Running() {
		if err := i.Step(); err != nil {
			return err
		}
	}
	if i.fault != nil {
		return i.fault
	}
	return nil
}
