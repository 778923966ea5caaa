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

package ops

import (
	"strconv"
	"strings"

	"github.com/wdamron/seqinfer/types"
)

// RegionString returns a string representation of a region and the current types of its values:
//
//   (%x : tensor<5xf32>) {
//     %s0 = SequenceEmpty() {dtype = 1} : seq<tensor<*xf32>, 0>
//     %s1 = SequenceInsert(%s0, %x) : seq<tensor<5xf32>, 1>
//     yield %s1
//   }
func RegionString(r *Region) string {
	var sb strings.Builder
	regionString(&sb, 0, r)
	return sb.String()
}

// OpString returns a string representation of a single operation, without nested regions.
func OpString(op Op) string {
	var sb strings.Builder
	opHeader(&sb, op)
	return sb.String()
}

func valueList(sb *strings.Builder, vs []*Value) {
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('%')
		sb.WriteString(v.Name)
	}
}

func typeList(sb *strings.Builder, vs []*Value) {
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(types.TypeString(v.Type()))
	}
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func regionString(sb *strings.Builder, depth int, r *Region) {
	sb.WriteByte('(')
	for i, arg := range r.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('%')
		sb.WriteString(arg.Name)
		sb.WriteString(" : ")
		sb.WriteString(types.TypeString(arg.Type()))
	}
	sb.WriteString(") {\n")
	for _, op := range r.Ops {
		indent(sb, depth+1)
		opHeader(sb, op)
		if loop, ok := op.(*Loop); ok && loop.Body != nil {
			sb.WriteByte(' ')
			regionString(sb, depth+1, loop.Body)
		}
		if len(op.Results()) > 0 {
			sb.WriteString(" : ")
			typeList(sb, op.Results())
		}
		sb.WriteByte('\n')
	}
	if len(r.Yield) > 0 {
		indent(sb, depth+1)
		sb.WriteString("yield ")
		valueList(sb, r.Yield)
		sb.WriteByte('\n')
	}
	indent(sb, depth)
	sb.WriteByte('}')
}

func opHeader(sb *strings.Builder, op Op) {
	if results := op.Results(); len(results) > 0 {
		valueList(sb, results)
		sb.WriteString(" = ")
	}
	sb.WriteString(op.OpName())
	sb.WriteByte('(')
	valueList(sb, op.Operands())
	sb.WriteByte(')')
	if empty, ok := op.(*SequenceEmpty); ok && empty.DType != nil {
		sb.WriteString(" {dtype = ")
		sb.WriteString(strconv.FormatInt(*empty.DType, 10))
		sb.WriteByte('}')
	}
}
