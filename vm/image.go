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
	"bytes"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Image is an Intcode program: the initial contents of memory cells 0 through
// len(Image)-1.
type Image []*big.Int

// Ints returns an Image built from the given values.
func Ints(vals ...int64) Image {
	img := make(Image, len(vals))
	for k, v := range vals {
		img[k] = big.NewInt(v)
	}
	return img
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return img, nil
}

// Parse reads a program from r. The program text is a list of base 10
// integers separated by commas and/or new lines. Surrounding white space and
// empty fields are ignored.
func Parse(r io.Reader) (Image, error) {
	var img Image
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)
	s.Split(scanFields)
	for s.Scan() {
		v, ok := new(big.Int).SetString(s.Text(), 10)
		if !ok {
			return nil, errors.Errorf("cell %d: invalid integer %q", len(img), s.Text())
		}
		img = append(img, v)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return img, nil
}

// ParseString parses a program from a string.
func ParseString(s string) (Image, error) {
	return Parse(strings.NewReader(s))
}

// Clone returns a deep copy of the image.
func (img Image) Clone() Image {
	c := make(Image, len(img))
	for k, v := range img {
		if v == nil {
			v = zero
		}
		c[k] = new(big.Int).Set(v)
	}
	return c
}

// WriteTo writes the image as comma separated program text to w.
func (img Image) WriteTo(w io.Writer) (int64, error) {
	ew := ici.NewErrWriter(w)
	cw := &ici.CountWriter{W: ew}
	for k, v := range img {
		if k > 0 {
			cw.Write([]byte{','})
		}
		if v == nil {
			v = zero
		}
		io.WriteString(cw, v.String())
	}
	return cw.N, ew.Err
}

func (img Image) String() string {
	var b bytes.Buffer
	img.WriteTo(&b)
	return b.String()
}
