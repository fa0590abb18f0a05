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
	"math/big"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Addresses up to twice the current dense size plus denseSlack grow the dense
// part of the memory. Anything further away lives in the sparse map until the
// dense part catches up with it.
const denseSlack = 4096

// MaxSnapshotLen is the largest extent, in cells, that Image and WriteTo
// accept. A machine that touched a far address can have an extent far beyond
// what fits in a slice or is worth printing.
const MaxSnapshotLen = 1 << 24

var zero = new(big.Int)

// Memory is the address space of an Intcode machine. It grows on demand: any
// access at or beyond Len first extends the memory with zero cells up to and
// including the accessed address. Memory never shrinks.
//
// Values stored in and returned from Memory are private copies.
type Memory struct {
	dense  []*big.Int // nil cells are zero
	sparse map[int]*big.Int
	size   int
}

// NewMemory returns a new Memory initialized with a copy of img. If reserve is
// larger than len(img), the memory is pre-extended to reserve cells.
func NewMemory(img Image, reserve int) *Memory {
	n := len(img)
	if reserve > n {
		n = reserve
	}
	m := &Memory{dense: make([]*big.Int, n), size: n}
	for k, v := range img {
		if v != nil && v.Sign() != 0 {
			m.dense[k] = new(big.Int).Set(v)
		}
	}
	return m
}

// Len returns the current extent of the memory, that is one past the highest
// address ever accessed or initialized.
func (m *Memory) Len() int {
	return m.size
}

// Read returns a copy of the value at address addr.
func (m *Memory) Read(addr int) (*big.Int, error) {
	v, err := m.load(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(v), nil
}

// Write stores a copy of v at address addr.
func (m *Memory) Write(addr int, v *big.Int) error {
	if !validAddr(addr) {
		return addrError(addr)
	}
	m.store(addr, new(big.Int).Set(v))
	return nil
}

// Peek returns a copy of the value at address addr without extending the
// memory. Addresses beyond Len read as zero.
func (m *Memory) Peek(addr int) (*big.Int, error) {
	if !validAddr(addr) {
		return nil, addrError(addr)
	}
	return new(big.Int).Set(m.get(addr)), nil
}

func (m *Memory) checkSnapshot() error {
	if m.size > MaxSnapshotLen {
		return errors.Wrapf(ErrSnapshotTooLarge, "extent of %d cells", m.size)
	}
	return nil
}

// Image returns a copy of cells 0 through Len()-1. It fails with
// ErrSnapshotTooLarge if Len is greater than MaxSnapshotLen.
func (m *Memory) Image() (Image, error) {
	if err := m.checkSnapshot(); err != nil {
		return nil, err
	}
	img := make(Image, m.size)
	for k := range img {
		img[k] = new(big.Int).Set(m.get(k))
	}
	return img, nil
}

// WriteTo writes cells 0 through Len()-1 as comma separated program text to w
// without making a copy of the memory. Like Image, it fails with
// ErrSnapshotTooLarge if Len is greater than MaxSnapshotLen.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	if err := m.checkSnapshot(); err != nil {
		return 0, err
	}
	ew := ici.NewErrWriter(w)
	cw := &ici.CountWriter{W: ew}
	for k := 0; k < m.size && ew.Err == nil; k++ {
		if k > 0 {
			cw.Write([]byte{','})
		}
		io.WriteString(cw, m.get(k).String())
	}
	return cw.N, ew.Err
}

// load returns the value at addr. The returned value must not be modified.
func (m *Memory) load(addr int) (*big.Int, error) {
	if !validAddr(addr) {
		return nil, addrError(addr)
	}
	m.touch(addr)
	return m.get(addr), nil
}

// store takes ownership of v.
func (m *Memory) store(addr int, v *big.Int) {
	m.touch(addr)
	if v.Sign() == 0 {
		v = nil
	}
	if addr >= len(m.dense) {
		m.grow(addr)
	}
	if addr < len(m.dense) {
		m.dense[addr] = v
		return
	}
	if v == nil {
		delete(m.sparse, addr)
		return
	}
	if m.sparse == nil {
		m.sparse = make(map[int]*big.Int)
	}
	m.sparse[addr] = v
}

func (m *Memory) touch(addr int) {
	if addr >= m.size {
		m.size = addr + 1
	}
}

func (m *Memory) get(addr int) *big.Int {
	var v *big.Int
	if addr < len(m.dense) {
		v = m.dense[addr]
	} else {
		v = m.sparse[addr]
	}
	if v == nil {
		return zero
	}
	return v
}

// grow extends the dense part so that it covers addr, unless addr is too far
// away from it.
func (m *Memory) grow(addr int) {
	if addr >= 2*len(m.dense)+denseSlack {
		return
	}
	n := 2 * len(m.dense)
	if n <= addr {
		n = addr + 1
	}
	m.resize(n)
}

// reserve extends the memory to n cells and makes all of them dense.
func (m *Memory) reserve(n int) {
	m.touch(n - 1)
	if n > len(m.dense) {
		m.resize(n)
	}
}

// resize sets the dense part to n cells and moves sparse cells below n into
// it. n must not be less than len(m.dense).
func (m *Memory) resize(n int) {
	d := make([]*big.Int, n)
	copy(d, m.dense)
	for a, v := range m.sparse {
		if a < n {
			d[a] = v
			delete(m.sparse, a)
		}
	}
	m.dense = d
}

const maxAddr = int(^uint(0)>>1) - 1

func validAddr(addr int) bool {
	return addr >= 0 && addr <= maxAddr
}

// toAddr converts a resolved operand to an address.
func toAddr(v *big.Int) (int, error) {
	if v.Sign() < 0 || !v.IsInt64() || v.Int64() > int64(maxAddr) {
		return 0, addrError(v)
	}
	return int(v.Int64()), nil
}
