// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package graphio

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

// Dump writes one line per value defined within r, as "name : type". Values defined within loop
// bodies are indented below the loop's results.
func Dump(w io.Writer, r *ops.Region) error {
	var sb strings.Builder
	dumpRegion(&sb, 0, r)
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write types")
}

// DumpString returns the output of Dump as a string.
func DumpString(r *ops.Region) string {
	var sb strings.Builder
	dumpRegion(&sb, 0, r)
	return sb.String()
}

func dumpRegion(sb *strings.Builder, depth int, r *ops.Region) {
	for _, arg := range r.Args {
		dumpValue(sb, depth, arg)
	}
	for _, op := range r.Ops {
		for _, res := range op.Results() {
			dumpValue(sb, depth, res)
		}
		if loop, ok := op.(*ops.Loop); ok {
			dumpRegion(sb, depth+1, loop.Body)
		}
	}
}

func dumpValue(sb *strings.Builder, depth int, v *ops.Value) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(v.Name)
	sb.WriteString(" : ")
	sb.WriteString(types.TypeString(v.Type()))
	sb.WriteByte('\n')
}

// ValueType is a value name paired with its printed type.
type ValueType struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Values returns the name and printed type of each value defined within r, in the order used
// by Dump.
func Values(r *ops.Region) []ValueType {
	var out []ValueType
	ops.WalkValues(r, func(v *ops.Value) {
		out = append(out, ValueType{Name: v.Name, Type: types.TypeString(v.Type())})
	})
	return out
}
