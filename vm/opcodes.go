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
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// Opcode selects an instruction. It is the value of the two lowest decimal
// digits of an instruction cell.
type Opcode int

// Intcode opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

var opcodes = map[Opcode]struct {
	name   string
	params int
}{
	OpAdd:         {"add", 3},
	OpMul:         {"mul", 3},
	OpIn:          {"in", 1},
	OpOut:         {"out", 1},
	OpJumpIfTrue:  {"jt", 2},
	OpJumpIfFalse: {"jf", 2},
	OpLessThan:    {"lt", 3},
	OpEquals:      {"eq", 3},
	OpAdjustBase:  {"arb", 1},
	OpHalt:        {"hlt", 0},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameters of op.
func (op Opcode) Params() int {
	return opcodes[op].params
}

func (op Opcode) String() string {
	if o, ok := opcodes[op]; ok {
		return o.name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Mode is a parameter addressing mode.
type Mode int

// Parameter modes.
const (
	ModePosition  Mode = 0 // operand is an address
	ModeImmediate Mode = 1 // operand is the value
	ModeRelative  Mode = 2 // operand + relative base is an address
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Instruction is a decoded instruction cell.
type Instruction struct {
	Op    Opcode
	Modes []Mode // one per parameter
}

var (
	big10  = big.NewInt(10)
	big100 = big.NewInt(100)
)

// Decode decodes the instruction cell v. The opcode is v mod 100, parameter
// modes are the remaining decimal digits, least significant first. Missing
// digits are zero. Negative cells are decoded with floored division.
func Decode(v *big.Int) (Instruction, error) {
	var modes, op big.Int
	modes.DivMod(v, big100, &op)
	ins := Instruction{Op: Opcode(op.Int64())}
	if !ins.Op.Valid() {
		return ins, errors.Wrapf(ErrInvalidOpcode, "opcode %d in cell %v", ins.Op, v)
	}
	n := ins.Op.Params()
	if n == 0 {
		return ins, nil
	}
	ins.Modes = make([]Mode, n)
	var d big.Int
	for k := range ins.Modes {
		modes.DivMod(&modes, big10, &d)
		m := Mode(d.Int64())
		switch m {
		case ModePosition, ModeImmediate, ModeRelative:
		default:
			return ins, errors.Wrapf(ErrInvalidMode, "mode %d for parameter %d in cell %v", m, k+1, v)
		}
		ins.Modes[k] = m
	}
	return ins, nil
}
