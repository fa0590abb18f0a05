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
	"bufio"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

// ErrClosedPipe is returned when writing to a closed Pipe.
var ErrClosedPipe = errors.New("write on closed pipe")

// InputSource is the source of values for input instructions. Next is called
// exactly once per executed input instruction and its result is written
// immediately. Implementations must deliver values in FIFO order: the first
// value made available is the first one returned.
//
// Next may block until a value is available. If no value can ever be
// produced, it should return an error wrapping ErrInputExhausted.
type InputSource interface {
	Next() (*big.Int, error)
}

// OutputSink is the sink for output instructions. Accept is called exactly once
// per executed output instruction, in program order. A non-nil error faults
// the machine.
type OutputSink interface {
	Accept(v *big.Int) error
}

// InputFunc adapts a function to the InputSource interface.
type InputFunc func() (*big.Int, error)

// Next calls f().
func (f InputFunc) Next() (*big.Int, error) { return f() }

// OutputFunc adapts a function to the OutputSink interface.
type OutputFunc func(v *big.Int) error

// Accept calls f(v).
func (f OutputFunc) Accept(v *big.Int) error { return f(v) }

// Queue is a FIFO of values. It can be used both as an InputSource, in which case
// Next fails with ErrInputExhausted when the queue is empty, and as an OutputSink
// that appends every value it receives. A Queue is not safe for concurrent
// use; see Pipe.
type Queue struct {
	vals []*big.Int
}

// NewQueue returns a new Queue pre-seeded with the given values.
func NewQueue(vals ...int64) *Queue {
	q := new(Queue)
	q.PushInt(vals...)
	return q
}

// Push appends copies of vals to the queue.
func (q *Queue) Push(vals ...*big.Int) {
	for _, v := range vals {
		q.vals = append(q.vals, new(big.Int).Set(v))
	}
}

// PushInt appends vals to the queue.
func (q *Queue) PushInt(vals ...int64) {
	for _, v := range vals {
		q.vals = append(q.vals, big.NewInt(v))
	}
}

// Len returns the number of queued values.
func (q *Queue) Len() int { return len(q.vals) }

// Next pops the oldest value from the queue.
func (q *Queue) Next() (*big.Int, error) {
	if len(q.vals) == 0 {
		return nil, errors.Wrap(ErrInputExhausted, "empty queue")
	}
	v := q.vals[0]
	q.vals[0] = nil
	q.vals = q.vals[1:]
	return v, nil
}

// Accept appends v to the queue.
func (q *Queue) Accept(v *big.Int) error {
	q.Push(v)
	return nil
}

// Pipe is a bounded FIFO that connects the output of one machine to the input
// of another running in a different goroutine. Next blocks until a value is
// available and Accept blocks while the pipe is full.
//
// Once closed, Accept fails with ErrClosedPipe and Next returns the values
// still buffered, then fails with ErrInputExhausted.
type Pipe struct {
	ch   chan *big.Int
	done chan struct{}
	once sync.Once
}

// NewPipe returns a new Pipe that buffers up to size values.
func NewPipe(size int) *Pipe {
	return &Pipe{
		ch:   make(chan *big.Int, size),
		done: make(chan struct{}),
	}
}

// Next implements InputSource.
func (p *Pipe) Next() (*big.Int, error) {
	select {
	case v := <-p.ch:
		return v, nil
	case <-p.done:
	}
	// closed: drain what is left
	select {
	case v := <-p.ch:
		return v, nil
	default:
		return nil, errors.Wrap(ErrInputExhausted, "closed pipe")
	}
}

// Accept implements OutputSink.
func (p *Pipe) Accept(v *big.Int) error {
	select {
	case <-p.done:
		return ErrClosedPipe
	default:
	}
	select {
	case p.ch <- new(big.Int).Set(v):
		return nil
	case <-p.done:
		return ErrClosedPipe
	}
}

// Send is a shorthand for Accept(big.NewInt(v)).
func (p *Pipe) Send(v int64) error {
	return p.Accept(big.NewInt(v))
}

// Close closes the pipe. It is safe to call Close more than once.
func (p *Pipe) Close() {
	p.once.Do(func() { close(p.done) })
}

// Recorder is an OutputSink that records all values it receives.
type Recorder struct {
	Values []*big.Int
}

// Accept implements OutputSink.
func (r *Recorder) Accept(v *big.Int) error {
	r.Values = append(r.Values, new(big.Int).Set(v))
	return nil
}

// Last returns the last recorded value or nil if nothing was recorded.
func (r *Recorder) Last() *big.Int {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[len(r.Values)-1]
}

// Strings returns the decimal representation of the recorded values.
func (r *Recorder) Strings() []string {
	s := make([]string, len(r.Values))
	for k, v := range r.Values {
		s[k] = v.String()
	}
	return s
}

type readerInput struct {
	s *bufio.Scanner
	n int
}

// NewReaderInput returns an InputSource that reads base 10 integers separated by
// white space or commas from r. Reaching the end of r is reported as
// ErrInputExhausted.
func NewReaderInput(r io.Reader) InputSource {
	s := bufio.NewScanner(r)
	s.Split(scanFields)
	return &readerInput{s: s}
}

func (r *readerInput) Next() (*big.Int, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return nil, errors.Wrap(err, "read failed")
		}
		return nil, errors.Wrap(ErrInputExhausted, "end of input")
	}
	r.n++
	v, ok := new(big.Int).SetString(r.s.Text(), 10)
	if !ok {
		return nil, errors.Errorf("input value #%d: invalid integer %q", r.n, r.s.Text())
	}
	return v, nil
}

type writerOutput struct {
	w io.Writer
}

// NewWriterOutput returns an OutputSink that writes every value in base 10 on its
// own line to w.
func NewWriterOutput(w io.Writer) OutputSink {
	return writerOutput{w}
}

func (o writerOutput) Accept(v *big.Int) error {
	_, err := fmt.Fprintln(o.w, v)
	return errors.Wrap(err, "write failed")
}

func isSep(c byte) bool {
	switch c {
	case ',', ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// scanFields is a bufio.SplitFunc that returns fields separated by any number
// of commas or white space characters.
func scanFields(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSep(data[start]) {
		start++
	}
	for k := start; k < len(data); k++ {
		if isSep(data[k]) {
			return k + 1, data[start:k], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
