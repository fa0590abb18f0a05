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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/db47h/intcode/lang/amp"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func parsePhases(s string) ([]int64, error) {
	var phases []int64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if lo, hi, ok := strings.Cut(f, "-"); ok && lo != "" {
			l, err1 := strconv.ParseInt(lo, 10, 64)
			h, err2 := strconv.ParseInt(hi, 10, 64)
			if err1 != nil || err2 != nil || l > h {
				return nil, errors.Errorf("invalid phase range %q", f)
			}
			for p := l; p <= h; p++ {
				phases = append(phases, p)
			}
			continue
		}
		p, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid phase %q", f)
		}
		phases = append(phases, p)
	}
	return phases, nil
}

func ampCmd() *cobra.Command {
	var (
		phases   string
		feedback bool
	)
	cmd := &cobra.Command{
		Use:   "amp <program>",
		Short: "Find the phase settings giving the highest amplifier signal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var err error
			defer func() { atExit(nil, err) }()

			ph, err := parsePhases(phases)
			if err != nil {
				return
			}
			img, err := vm.Load(args[0])
			if err != nil {
				return
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			v, perm, err := amp.MaxSignal(ctx, img, ph, feedback, vm.Logger(newLogger()))
			if err != nil {
				return
			}
			fmt.Printf("signal=%v phases=%v\n", v, perm)
		},
	}
	cmd.Flags().StringVar(&phases, "phases", "", "comma separated phase settings or ranges (default 0-4, or 5-9 with --feedback)")
	cmd.Flags().BoolVar(&feedback, "feedback", false, "connect the amplifiers in a feedback loop")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if phases == "" {
			phases = "0-4"
			if feedback {
				phases = "5-9"
			}
		}
	}
	return cmd
}
