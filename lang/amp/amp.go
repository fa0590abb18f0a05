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

// Package amp composes several Intcode machines: amplifier chains, feedback
// loops and searches over their configuration space.
//
// Machines never schedule each other. Chain runs them one after the other and
// connects them with queues; Feedback runs each machine in its own goroutine
// and connects them with vm.Pipe values.
package amp

import (
	"context"
	"math/big"
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned by searches that found no matching configuration.
var ErrNotFound = errors.New("not found")

// pipeSize is large enough to hold the phase setting and first signal.
const pipeSize = 2

func ampName(k int) string {
	if k < 26 {
		return string(rune('A' + k))
	}
	return "amp" + strconv.Itoa(k)
}

// with returns a copy of opts with extra appended.
func with(opts []vm.Option, extra ...vm.Option) []vm.Option {
	return append(append(make([]vm.Option, 0, len(opts)+len(extra)), opts...), extra...)
}

// Chain runs one machine per phase setting, in order. Every machine receives
// its phase setting then the previous machine's output, the first one
// receiving signal. It returns the last value output by the final machine.
func Chain(ctx context.Context, img vm.Image, phases []int64, signal int64, opts ...vm.Option) (*big.Int, error) {
	v := big.NewInt(signal)
	for k, p := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in := vm.NewQueue(p)
		in.Push(v)
		var out vm.Recorder
		i, err := vm.New(img, with(opts, vm.Name(ampName(k)), vm.Input(in), vm.Output(&out))...)
		if err != nil {
			return nil, err
		}
		if err = i.Run(); err != nil {
			return nil, errors.Wrapf(err, "amplifier %s", ampName(k))
		}
		if v = out.Last(); v == nil {
			return nil, errors.Errorf("amplifier %s: no output", ampName(k))
		}
	}
	return v, nil
}

// Feedback connects one machine per phase setting in a loop: the output of
// the last machine is fed back to the input of the first. All machines run
// concurrently until they halt. It returns the last value output by the final
// machine.
//
// If any machine faults, all pipes are closed so that the others stop too and
// the first error is returned.
func Feedback(ctx context.Context, img vm.Image, phases []int64, signal int64, opts ...vm.Option) (*big.Int, error) {
	n := len(phases)
	if n == 0 {
		return nil, errors.New("no phase settings")
	}
	pipes := make([]*vm.Pipe, n)
	for k, p := range phases {
		pipes[k] = vm.NewPipe(pipeSize)
		pipes[k].Send(p)
	}
	pipes[0].Send(signal)

	var last *big.Int
	loopback := vm.OutputFunc(func(v *big.Int) error {
		last = v
		err := pipes[0].Accept(v)
		if errors.Is(err, vm.ErrClosedPipe) {
			// the first amplifier has halted
			return nil
		}
		return err
	})

	machines := make([]*vm.Instance, n)
	for k := range machines {
		var out vm.OutputSink = loopback
		if k < n-1 {
			out = pipes[k+1]
		}
		i, err := vm.New(img, with(opts, vm.Name(ampName(k)), vm.Input(pipes[k]), vm.Output(out))...)
		if err != nil {
			return nil, err
		}
		machines[k] = i
	}

	g, gctx := errgroup.WithContext(ctx)
	go func() {
		<-gctx.Done()
		for _, p := range pipes {
			p.Close()
		}
	}()
	for k, i := range machines {
		k, i := k, i
		g.Go(func() error {
			defer pipes[k].Close()
			return errors.Wrapf(i.Run(), "amplifier %s", ampName(k))
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	if last == nil {
		return nil, errors.Errorf("amplifier %s: no output", ampName(n-1))
	}
	return last, nil
}

// MaxSignal tries every permutation of phases and returns the highest signal
// along with the phase settings that produced it. If feedback is true, the
// machines are run with Feedback, otherwise with Chain.
func MaxSignal(ctx context.Context, img vm.Image, phases []int64, feedback bool, opts ...vm.Option) (*big.Int, []int64, error) {
	run := Chain
	if feedback {
		run = Feedback
	}
	var (
		best     *big.Int
		bestPerm []int64
	)
	for _, p := range Permutations(phases) {
		v, err := run(ctx, img, p, 0, opts...)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "phases %v", p)
		}
		if best == nil || v.Cmp(best) > 0 {
			best, bestPerm = v, p
		}
	}
	if best == nil {
		return nil, nil, ErrNotFound
	}
	return best, bestPerm, nil
}

// Permutations returns all permutations of vals (Heap's algorithm). The
// first permutation is vals itself.
func Permutations(vals []int64) [][]int64 {
	a := append([]int64(nil), vals...)
	perms := [][]int64{append([]int64(nil), a...)}
	c := make([]int, len(a))
	for k := 1; k < len(a); {
		if c[k] < k {
			if k%2 == 0 {
				a[0], a[k] = a[k], a[0]
			} else {
				a[c[k]], a[k] = a[k], a[c[k]]
			}
			perms = append(perms, append([]int64(nil), a...))
			c[k]++
			k = 1
		} else {
			c[k] = 0
			k++
		}
	}
	return perms
}
