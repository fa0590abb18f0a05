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

// Package vm implements an Intcode virtual machine.
//
// Intcode programs are flat sequences of integers that share a single address
// space with their own data. The machine supports arithmetic, comparisons,
// conditional jumps, relative addressing and pluggable I/O. Memory grows on
// demand and cells hold integers of unbounded magnitude (math/big).
//
// A typical driver looks like:
//
//	img, err := vm.Load("input.txt")
//	if err != nil {
//		return err
//	}
//	i, err := vm.New(img, vm.Input(vm.NewQueue(1)), vm.Output(&rec))
//	if err != nil {
//		return err
//	}
//	if err = i.Run(); err != nil {
//		return err
//	}
//
// Run is only a convenience loop around Step. Drivers that need to interleave
// several machines or inspect state between instructions call Step directly
// until Running returns false.
//
// The PC is not advanced in a single place: jump instructions set it directly
// and every other instruction advances it by 1 + its parameter count once it
// has completed. If an instruction fails, nothing it would have written is
// visible and the PC still points at it.
//
// I/O happens through the InputSource and OutputSink interfaces. Input
// sources are FIFO: the first value pushed is the first value consumed. The
// only point where a machine may block is inside InputSource.Next.
package vm
