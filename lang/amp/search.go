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

package amp

import (
	"math/big"

	"github.com/db47h/intcode/vm"
)

var discard = vm.OutputFunc(func(*big.Int) error { return nil })

// SearchNounVerb looks for the noun and verb, both in the range [0, max],
// that make the program leave target in memory cell 0 once halted. Each pair
// runs on a fresh copy of img; pairs that fault are skipped.
func SearchNounVerb(img vm.Image, target *big.Int, max int) (noun, verb int, err error) {
	for noun = 0; noun <= max; noun++ {
		for verb = 0; verb <= max; verb++ {
			i, err := vm.New(img,
				vm.NounVerb(int64(noun), int64(verb)),
				vm.Input(vm.NewQueue()),
				vm.Output(discard))
			if err != nil {
				return 0, 0, err
			}
			if i.Run() != nil {
				continue
			}
			v, err := i.Read(0)
			if err != nil {
				return 0, 0, err
			}
			if v.Cmp(target) == 0 {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, ErrNotFound
}
