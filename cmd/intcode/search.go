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
	"fmt"
	"math/big"

	"github.com/db47h/intcode/lang/amp"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var (
		target string
		max    int
	)
	cmd := &cobra.Command{
		Use:   "search <program>",
		Short: "Find the noun and verb that produce a given value at address 0",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var err error
			defer func() { atExit(nil, err) }()

			t, ok := new(big.Int).SetString(target, 10)
			if !ok {
				err = errors.Errorf("invalid target %q", target)
				return
			}
			img, err := vm.Load(args[0])
			if err != nil {
				return
			}
			noun, verb, err := amp.SearchNounVerb(img, t, max)
			if err != nil {
				return
			}
			fmt.Printf("noun=%d verb=%d answer=%d\n", noun, verb, 100*noun+verb)
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "19690720", "`value` to look for")
	cmd.Flags().IntVar(&max, "max", 99, "maximum `value` for noun and verb")
	return cmd
}
