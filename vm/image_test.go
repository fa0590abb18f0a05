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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		exp  []string
	}{
		{"1,0,0,0,99", ints(1, 0, 0, 0, 99)},
		{"1,0,0,\n0,99\n", ints(1, 0, 0, 0, 99)},
		{" 1, -2 ,\r\n3 ", ints(1, -2, 3)},
		{"", nil},
		{"\n", nil},
		{"104,99999999999999999999999,99", []string{"104", "99999999999999999999999", "99"}},
	}
	for _, test := range tests {
		img, err := vm.ParseString(test.text)
		require.NoError(t, err, "%q", test.text)
		assert.Equal(t, test.exp, nilIfEmpty(strs(img)), "%q", test.text)
	}

	_, err := vm.ParseString("1,2,a,4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cell 2: invalid integer "a"`)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestImage_String(t *testing.T) {
	img := vm.Ints(1, -2, 3)
	assert.Equal(t, "1,-2,3", img.String())
	var b strings.Builder
	n, err := img.WriteTo(&b)
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)

	c := img.Clone()
	c[0].SetInt64(5)
	assert.Equal(t, "1", img[0].String())
	assert.Equal(t, "", vm.Image(nil).String())
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(t, os.WriteFile(name, []byte("1,0,0,0,\n99\n"), 0644))
	img, err := vm.Load(name)
	require.NoError(t, err)
	assert.Equal(t, "1,0,0,0,99", img.String())

	_, err = vm.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(name, []byte("1,0,x"), 0644))
	_, err = vm.Load(name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), name)
}
