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

// The intcode command line tool runs Intcode programs with the package
// github.com/db47h/intcode/vm.
//
// Usage:
//
//	intcode run [flags] <program>
//	intcode search [flags] <program>
//	intcode amp [flags] <program>
//
// Programs are text files holding comma separated integers, possibly split
// over several lines.
//
// run: runs a program until it halts. Values output by the program are printed
// one per line. Input values come from --input if given, otherwise they are
// read from the console, one or more values per line. The following flags are
// available:
//
//	-i, --input values
//		  comma separated input values (disables console input)
//	--noun noun, --verb verb
//		  set addresses 1 and 2 before running
//	-p, --patch addr=value
//		  set a memory cell before running (can be specified multiple times)
//	--mem size
//		  pre-extend memory to size cells
//	-r, --read addresses
//		  print memory cells after the program halts
//	--dump
//		  dump memory upon exit
//	--stats
//		  print machine state upon exit
//	--name name
//		  machine name used in debug logs
//
// search: looks for the noun and verb in [0, --max] that leave --target in
// address 0 and prints them along with 100*noun+verb.
//
// amp: runs the program as a chain of amplifiers for every permutation of
// --phases and prints the highest signal. With --feedback, the amplifiers
// are connected in a loop and run concurrently.
//
// --debug: logs every executed instruction to stderr and prints a full
// stacktrace and the machine state should the VM fault.
package main
