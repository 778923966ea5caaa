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

package seqinfer_test

import (
	"strconv"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"

	. "github.com/wdamron/seqinfer"
	. "github.com/wdamron/seqinfer/construct"

	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

func BenchmarkJoin(b *testing.B) {
	x := TTensor(dtypes.Float32, 8, 16, 32, 64)
	y := TTensor(dtypes.Float32, 8, 16, 31, 64)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if types.Join(x, y).Shape.Rank() != 4 {
			b.Fatal("unexpected rank")
		}
	}
}

func BenchmarkInsertChain(b *testing.B) {
	const length = 32
	args := make([]*ops.Value, length)
	for i := range args {
		args[i] = Value("x"+strconv.Itoa(i), TTensor(dtypes.Float32, 4, int64(i%3)))
	}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		seq := Untyped("s")
		body := []ops.Op{Empty(seq)}
		for i, arg := range args {
			next := Untyped("s" + strconv.Itoa(i))
			body = append(body, Insert(next, seq, arg))
			seq = next
		}
		if err := NewContext().Infer(Region(args, body, seq)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoop(b *testing.B) {
	x := Value("x", TTensor(dtypes.Float32, 5))

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		s0, out := Untyped("s0"), Untyped("out")
		acc, next := Untyped("acc"), Untyped("next")
		body := Region([]*ops.Value{acc}, []ops.Op{Insert(next, acc, x)}, next)
		r := Region([]*ops.Value{x}, []ops.Op{Empty(s0), Loop([]*ops.Value{s0}, body, out)})
		if err := NewContext().Infer(r); err != nil {
			b.Fatal(err)
		}
	}
}
