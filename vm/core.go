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

	"github.com/pkg/errors"
)

// Step executes a single instruction.
//
// If an error occurs, the machine transitions to the Faulted state and the
// returned error is a *Fault. The PC will point to the instruction that
// triggered the error and memory is left untouched by that instruction.
//
// Calling Step on a machine that has halted or faulted returns an error
// wrapping ErrNotRunning and has no effect.
func (i *Instance) Step() (err error) {
	if !i.Running() {
		return errors.Wrapf(ErrNotRunning, "step @pc=%d in state %v", i.PC, i.state)
	}
	i.state = Running

	var op Opcode
	extent := i.mem.Len()
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = i.halt(op, errors.Wrap(e, "recovered error"))
			default:
				err = i.halt(op, errors.Errorf("recovered panic: %v", e))
			}
		}
		if i.state == Faulted {
			// operand reads of the faulting instruction do not count
			i.mem.size = extent
		}
	}()

	cell, err := i.mem.load(i.PC)
	if err != nil {
		return i.halt(op, err)
	}
	ins, err := Decode(cell)
	op = ins.Op
	if err != nil {
		return i.halt(op, err)
	}
	i.log.Debug("step", "pc", i.PC, "op", op, "rb", i.rb)

	next := i.PC + 1 + len(ins.Modes)
	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		a, b, err := i.params2(ins)
		if err != nil {
			return i.halt(op, err)
		}
		dst, err := i.addr(ins, 2)
		if err != nil {
			return i.halt(op, err)
		}
		r := new(big.Int)
		switch op {
		case OpAdd:
			r.Add(a, b)
		case OpMul:
			r.Mul(a, b)
		case OpLessThan:
			if a.Cmp(b) < 0 {
				r.SetInt64(1)
			}
		case OpEquals:
			if a.Cmp(b) == 0 {
				r.SetInt64(1)
			}
		}
		i.mem.store(dst, r)
	case OpIn:
		dst, err := i.addr(ins, 0)
		if err != nil {
			return i.halt(op, err)
		}
		v, err := i.input.Next()
		if err != nil {
			return i.halt(op, errors.Wrap(err, "input"))
		}
		if v == nil {
			return i.halt(op, errors.Wrap(ErrInputExhausted, "input returned no value"))
		}
		i.mem.store(dst, new(big.Int).Set(v))
	case OpOut:
		v, err := i.param(ins, 0)
		if err != nil {
			return i.halt(op, err)
		}
		if err = i.output.Accept(new(big.Int).Set(v)); err != nil {
			return i.halt(op, errors.Wrap(err, "output"))
		}
	case OpJumpIfTrue, OpJumpIfFalse:
		c, t, err := i.params2(ins)
		if err != nil {
			return i.halt(op, err)
		}
		if (c.Sign() != 0) == (op == OpJumpIfTrue) {
			if next, err = toAddr(t); err != nil {
				return i.halt(op, errors.Wrap(err, "jump target"))
			}
		}
	case OpAdjustBase:
		a, err := i.param(ins, 0)
		if err != nil {
			return i.halt(op, err)
		}
		i.rb = new(big.Int).Add(i.rb, a)
	case OpHalt:
		i.state = Halted
		i.log.Debug("halt", "pc", i.PC, "instructions", i.insCount+1)
	default:
		return i.halt(op, errors.Wrapf(ErrInvalidOpcode, "opcode %d", op))
	}
	i.PC = next
	i.insCount++
	return nil
}

// halt moves the machine to the Faulted state.
func (i *Instance) halt(op Opcode, err error) error {
	i.state = Faulted
	i.fault = &Fault{
		PC:           i.PC,
		Opcode:       op,
		RelativeBase: new(big.Int).Set(i.rb),
		Err:          err,
	}
	i.log.Debug("fault", "pc", i.PC, "op", op, "rb", i.rb, "err", err)
	return i.fault
}

// operand returns the raw value of parameter n.
func (i *Instance) operand(n int) (*big.Int, error) {
	return i.mem.load(i.PC + 1 + n)
}

// param returns the value of parameter n, resolved according to its mode.
func (i *Instance) param(ins Instruction, n int) (*big.Int, error) {
	v, err := i.operand(n)
	if err != nil {
		return nil, err
	}
	switch ins.Modes[n] {
	case ModeImmediate:
		return v, nil
	case ModeRelative:
		v = new(big.Int).Add(v, i.rb)
	}
	a, err := toAddr(v)
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %d", n+1)
	}
	return i.mem.load(a)
}

func (i *Instance) params2(ins Instruction) (a, b *big.Int, err error) {
	if a, err = i.param(ins, 0); err != nil {
		return nil, nil, err
	}
	if b, err = i.param(ins, 1); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// addr returns the address targeted by write parameter n.
func (i *Instance) addr(ins Instruction, n int) (int, error) {
	v, err := i.operand(n)
	if err != nil {
		return 0, err
	}
	switch ins.Modes[n] {
	case ModeImmediate:
		return 0, errors.Wrapf(ErrIllegalWriteMode, "parameter %d", n+1)
	case ModeRelative:
		v = new(big.Int).Add(v, i.rb)
	}
	a, err := toAddr(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parameter %d", n+1)
	}
	return a, nil
}
