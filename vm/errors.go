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
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Fatal conditions. Errors returned by the VM wrap one of these, so callers
// can check them with errors.Is or errors.Cause.
var (
	ErrAddress          = errors.New("invalid address")
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrInvalidMode      = errors.New("invalid parameter mode")
	ErrIllegalWriteMode = errors.New("write through immediate mode parameter")
	ErrInputExhausted   = errors.New("input exhausted")
	ErrNotRunning       = errors.New("machine is not running")
	ErrSnapshotTooLarge = errors.New("memory too large for a snapshot")
)

// Fault records the machine state at the point where a fatal condition
// occurred. The faulting instruction had no visible effect.
type Fault struct {
	PC           int
	Opcode       Opcode
	RelativeBase *big.Int
	Err          error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault @pc=%d op=%v rb=%v: %v", f.PC, f.Opcode, f.RelativeBase, f.Err)
}

// Cause returns the underlying error. Implements the causer interface of
// github.com/pkg/errors.
func (f *Fault) Cause() error { return f.Err }

func (f *Fault) Unwrap() error { return f.Err }

// Format implements fmt.Formatter so that %+v prints the stack trace of the
// underlying error.
func (f *Fault) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "fault @pc=%d op=%v rb=%v: %+v", f.PC, f.Opcode, f.RelativeBase, f.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, f.Error())
	case 'q':
		fmt.Fprintf(s, "%q", f.Error())
	}
}

func addrError(addr interface{}) error {
	return errors.Wrapf(ErrAddress, "address %v", addr)
}
