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
	"bytes"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatch(t *testing.T) {
	addr, v, err := parsePatch("12 = -3")
	require.NoError(t, err)
	assert.Equal(t, 12, addr)
	assert.Equal(t, "-3", v.String())

	for _, s := range []string{"12", "a=1", "1=b"} {
		_, _, err = parsePatch(s)
		assert.Error(t, err, s)
	}
}

func TestParsePhases(t *testing.T) {
	p, err := parsePhases("0-4")
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, p)

	p, err = parsePhases("9, 7,-1")
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 7, -1}, p)

	p, err = parsePhases("1,5-6")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5, 6}, p)

	for _, s := range []string{"4-0", "x", "1-y"} {
		_, err = parsePhases(s)
		assert.Error(t, err, s)
	}
}

func TestRunFlags(t *testing.T) {
	f := runFlags{input: []string{"1", "2,3"}, noun: 4, verb: 5, patches: []string{"7=8"}, mem: 16}
	opts, cleanup, err := f.options()
	require.NoError(t, err)
	defer cleanup()
	var out vm.Recorder
	// echo three values
	i, err := vm.New(vm.Ints(3, 0, 4, 0, 3, 0, 4, 0, 3, 0, 4, 0, 99), append(opts, vm.Output(&out))...)
	require.NoError(t, err)
	v, _ := i.Read(1)
	assert.Equal(t, "4", v.String())
	v, _ = i.Read(7)
	assert.Equal(t, "8", v.String())
	assert.Equal(t, 16, i.MemoryLen())

	f = runFlags{input: []string{"1"}, noun: 4, verb: -1}
	_, _, err = f.options()
	require.Error(t, err)
}

func TestPrintStats(t *testing.T) {
	i, err := vm.New(vm.Ints(1101, 1, 1, 0, 3, 0), vm.Name("box"), vm.Input(vm.NewQueue()))
	require.NoError(t, err)
	require.Error(t, i.Run())
	var b bytes.Buffer
	printStats(&b, i)
	s := b.String()
	assert.Contains(t, s, "faulted")
	assert.Contains(t, s, "box")
	assert.Contains(t, s, "input: empty queue: input exhausted")
}
