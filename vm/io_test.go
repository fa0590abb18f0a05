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

package vm_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ vm.InputSource = (*vm.Queue)(nil)
	_ vm.InputSource = (*vm.Pipe)(nil)
	_ vm.InputSource = vm.InputFunc(nil)
	_ vm.OutputSink  = (*vm.Queue)(nil)
	_ vm.OutputSink  = (*vm.Pipe)(nil)
	_ vm.OutputSink  = (*vm.Recorder)(nil)
	_ vm.OutputSink  = vm.OutputFunc(nil)
)

func TestQueue(t *testing.T) {
	q := vm.NewQueue(1, 2)
	q.Push(big.NewInt(3))
	require.NoError(t, q.Accept(big.NewInt(4)))
	assert.Equal(t, 4, q.Len())
	for _, exp := range []string{"1", "2", "3", "4"} {
		v, err := q.Next()
		require.NoError(t, err)
		assert.Equal(t, exp, v.String())
	}
	_, err := q.Next()
	require.ErrorIs(t, err, vm.ErrInputExhausted)
}

func TestQueue_Copies(t *testing.T) {
	var q vm.Queue
	v := big.NewInt(7)
	q.Push(v)
	v.SetInt64(8)
	got, err := q.Next()
	require.NoError(t, err)
	assert.Equal(t, "7", got.String())
}

func TestPipe(t *testing.T) {
	p := vm.NewPipe(1)
	go func() {
		for n := int64(0); n < 10; n++ {
			if err := p.Send(n); err != nil {
				return
			}
		}
		p.Close()
	}()
	var got []string
	for {
		v, err := p.Next()
		if err != nil {
			require.ErrorIs(t, err, vm.ErrInputExhausted)
			break
		}
		got = append(got, v.String())
	}
	assert.Equal(t, ints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9), got)
	require.ErrorIs(t, p.Send(1), vm.ErrClosedPipe)
	p.Close()
}

func TestPipe_CloseUnblocks(t *testing.T) {
	p := vm.NewPipe(0)
	done := make(chan error)
	go func() {
		_, err := p.Next()
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	p.Close()
	select {
	case err := <-done:
		require.ErrorIs(t, err, vm.ErrInputExhausted)
	case <-time.After(5 * time.Second):
		t.Fatal("Next did not return after Close")
	}
}

func TestPipe_Machines(t *testing.T) {
	// a doubles its input, b adds one; a's output feeds b's input
	in, ab := vm.NewPipe(1), vm.NewPipe(0)
	var out vm.Recorder
	a, err := vm.New(vm.Ints(3, 0, 1002, 0, 2, 0, 4, 0, 99), vm.Input(in), vm.Output(ab))
	require.NoError(t, err)
	b, err := vm.New(vm.Ints(3, 0, 1001, 0, 1, 0, 4, 0, 99), vm.Input(ab), vm.Output(&out))
	require.NoError(t, err)
	errc := make(chan error, 1)
	go func() { errc <- a.Run() }()
	require.NoError(t, in.Send(20))
	require.NoError(t, b.Run())
	require.NoError(t, <-errc)
	assert.Equal(t, ints(41), out.Strings())
}

func TestReaderInput(t *testing.T) {
	in := vm.NewReaderInput(strings.NewReader(" 1, 2\n-3\n\n123456789012345678901234567890 "))
	for _, exp := range []string{"1", "2", "-3", "123456789012345678901234567890"} {
		v, err := in.Next()
		require.NoError(t, err)
		assert.Equal(t, exp, v.String())
	}
	_, err := in.Next()
	require.ErrorIs(t, err, vm.ErrInputExhausted)

	in = vm.NewReaderInput(strings.NewReader("4 x"))
	_, err = in.Next()
	require.NoError(t, err)
	_, err = in.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `input value #2: invalid integer "x"`)
}

func TestWriterOutput(t *testing.T) {
	var b bytes.Buffer
	i, err := vm.New(vm.Ints(104, -1, 104, 1125899906842624, 99), vm.Output(vm.NewWriterOutput(&b)))
	require.NoError(t, err)
	require.NoError(t, i.Run())
	assert.Equal(t, "-1\n1125899906842624\n", b.String())
}

func TestRecorder(t *testing.T) {
	var r vm.Recorder
	assert.Nil(t, r.Last())
	require.NoError(t, r.Accept(big.NewInt(3)))
	require.NoError(t, r.Accept(big.NewInt(5)))
	assert.Equal(t, "5", r.Last().String())
	assert.Equal(t, []string{"3", "5"}, r.Strings())
}
