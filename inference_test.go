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
	"bytes"
	"log/slog"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/seqinfer"
	. "github.com/wdamron/seqinfer/construct"

	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

func TestInferStraightLine(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 2, 3))
	y := Value("y", TTensor(dtypes.Float32, 4, 3))
	i := Value("i", TScalar(dtypes.Int64))
	s0, s1, s2, s3 := Untyped("s0"), Untyped("s1"), Untyped("s2"), Untyped("s3")
	elem, n := Untyped("elem"), Untyped("n")

	r := Region([]*ops.Value{x, y, i}, []ops.Op{
		Empty(s0),
		Insert(s1, s0, x),
		Insert(s2, s1, y),
		Erase(s3, s2),
		At(elem, s3, i),
		Length(n, s3),
	}, s3)

	ctx := NewContext()
	require.NoError(t, ctx.Infer(r))

	assert.Equal(t, "seq<tensor<*xf32>, 0>", types.TypeString(s0.Type()))
	assert.Equal(t, "seq<tensor<2x3xf32>, 1>", types.TypeString(s1.Type()))
	assert.Equal(t, "seq<tensor<?x3xf32>, 2>", types.TypeString(s2.Type()))
	assert.Equal(t, "seq<tensor<?x3xf32>, 1>", types.TypeString(s3.Type()))
	assert.Equal(t, "tensor<?x3xf32>", types.TypeString(elem.Type()))
	assert.Equal(t, "tensor<i64>", types.TypeString(n.Type()))
	assert.Empty(t, ctx.Diagnostics())
}

func TestInferOutOfOrder(t *testing.T) {
	x := Value("x", TTensor(dtypes.Int32, 3))
	s0, s1, n := Untyped("s0"), Untyped("s1"), Untyped("n")

	// Uses precede definitions; inference orders operations by their uses.
	r := Region([]*ops.Value{x}, []ops.Op{
		Length(n, s1),
		Insert(s1, s0, x),
		EmptyOf(s0, types.CodeInt32),
	})

	ctx := NewContext()
	require.NoError(t, ctx.Infer(r))
	assert.Equal(t, "seq<tensor<3xi32>, 1>", types.TypeString(s1.Type()))
	assert.Equal(t, "tensor<i64>", types.TypeString(n.Type()))
	assert.Equal(t, 2, ctx.Passes())
}

func TestInferIdempotent(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	s0, s1 := Untyped("s0"), Untyped("s1")
	r := Region([]*ops.Value{x}, []ops.Op{Empty(s0), Insert(s1, s0, x)})

	ctx := NewContext()
	require.NoError(t, ctx.Infer(r))
	first := ops.RegionString(r)

	require.NoError(t, ctx.Infer(r))
	assert.Equal(t, first, ops.RegionString(r))
	assert.Equal(t, 1, ctx.Passes(), "an already refined region changes nothing")
}

func TestInferFailureIsolation(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	bad := Value("bad", TTensor(dtypes.Int64, 5))
	s0, s1, s2, s3, s4 := Untyped("s0"), Untyped("s1"), Untyped("s2"), Untyped("s3"), Untyped("s4")
	n := Untyped("n")

	r := Region([]*ops.Value{x, bad}, []ops.Op{
		Empty(s0),
		Erase(s1, s0),
		Insert(s2, s0, bad),
		Insert(s3, s0, x),
		Insert(s4, s1, x),
		Length(n, s3),
	})

	ctx := NewContext()
	err := ctx.Infer(r)
	require.Error(t, err)

	errs, ok := err.(Errors)
	require.True(t, ok, "unexpected error type %T", err)
	assert.Equal(t, []ErrorKind{EmptySequenceErase, DTypeMismatch}, errs.Kinds())
	assert.Equal(t, errs, ctx.Diagnostics())

	assert.Nil(t, s1.Type())
	assert.Nil(t, s2.Type())
	assert.Nil(t, s4.Type(), "operations using a failed result are not ready")
	assert.Equal(t, "seq<tensor<5xf32>, 1>", types.TypeString(s3.Type()))
	assert.Equal(t, "tensor<i64>", types.TypeString(n.Type()))
}

func TestInferLoopCarriedSequence(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	s0, out := Untyped("s0"), Untyped("out")
	acc, next := Untyped("acc"), Untyped("next")

	body := Region([]*ops.Value{acc}, []ops.Op{Insert(next, acc, x)}, next)
	r := Region([]*ops.Value{x}, []ops.Op{
		Empty(s0),
		Loop([]*ops.Value{s0}, body, out),
	})

	ctx := NewContext()
	require.NoError(t, ctx.Infer(r))
	assert.Equal(t, "seq<tensor<5xf32>>", types.TypeString(acc.Type()))
	assert.Equal(t, "seq<tensor<5xf32>>", types.TypeString(next.Type()))
	assert.Equal(t, "seq<tensor<5xf32>>", types.TypeString(out.Type()))
}

func TestInferLoopWidensElements(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 2, 3))
	y := Value("y", TTensor(dtypes.Float32, 2, 7))
	s0, out := Untyped("s0"), Untyped("out")
	acc, next, elem := Untyped("acc"), Untyped("next"), Untyped("elem")
	i := Value("i", TScalar(dtypes.Int64))

	body := Region([]*ops.Value{acc}, []ops.Op{
		Insert(next, acc, y),
		At(elem, next, i),
	}, next)
	r := Region([]*ops.Value{x, y, i}, []ops.Op{
		Construct(s0, x),
		Loop([]*ops.Value{s0}, body, out),
	})

	ctx := NewContext()
	require.NoError(t, ctx.Infer(r))
	assert.Equal(t, "seq<tensor<2x?xf32>>", types.TypeString(out.Type()))
	assert.Equal(t, "tensor<2x?xf32>", types.TypeString(elem.Type()))
}

func TestInferLoopRederivesElementReads(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 2, 3))
	y := Value("y", TTensor(dtypes.Float32, 2, 7))
	s0, out := Untyped("s0"), Untyped("out")
	acc, next, elem := Untyped("acc"), Untyped("next"), Untyped("elem")
	i := Value("i", TScalar(dtypes.Int64))

	// elem is read from the carried sequence before the insert widens it.
	body := Region([]*ops.Value{acc}, []ops.Op{
		At(elem, acc, i),
		Insert(next, acc, y),
	}, next)
	r := Region([]*ops.Value{x, y, i}, []ops.Op{
		Construct(s0, x),
		Loop([]*ops.Value{s0}, body, out),
	})

	require.NoError(t, NewContext().Infer(r))
	assert.Equal(t, "seq<tensor<2x?xf32>>", types.TypeString(acc.Type()))
	assert.Equal(t, "tensor<2x?xf32>", types.TypeString(elem.Type()))
}

func TestInferElementReadFromUnrankedSequence(t *testing.T) {
	x := Value("x", TUnranked(dtypes.Float32))
	i := Value("i", TScalar(dtypes.Int64))
	s, elem, s2 := Untyped("s"), Untyped("elem"), Untyped("s2")
	r := Region([]*ops.Value{x, i}, []ops.Op{
		Construct(s, x),
		At(elem, s, i),
		Construct(s2, elem),
	})

	require.NoError(t, NewContext().Infer(r))
	assert.Equal(t, "tensor<*xf32>", types.TypeString(elem.Type()))
	assert.Equal(t, "seq<tensor<*xf32>, 1>", types.TypeString(s2.Type()))
}

func TestInferLoopCarryFailureCommitsNothing(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	z := Value("z", TTensor(dtypes.Int32, 5))
	s0, s1 := Untyped("s0"), Untyped("s1")
	a := Untyped("a")
	b := Value("b", TSeq(TUnranked(dtypes.Float32), 1))
	outA, outB := Untyped("outA"), Untyped("outB")
	loop := Loop([]*ops.Value{s0, s1}, Region([]*ops.Value{a, b}, nil, a, b), outA, outB)
	r := Region([]*ops.Value{x, z}, []ops.Op{
		Construct(s0, x),
		Construct(s1, z),
		loop,
	})

	err := NewContext().Infer(r)
	require.Error(t, err)
	errs := err.(Errors)
	require.Len(t, errs, 1)
	assert.Equal(t, DTypeMismatch, errs[0].Kind)
	assert.Same(t, loop, errs[0].Op)

	assert.Nil(t, a.Type(), "no carried value is rewritten when another fails to join")
	assert.Equal(t, "seq<tensor<*xf32>, 1>", types.TypeString(b.Type()))
	assert.Nil(t, outA.Type())
	assert.Nil(t, outB.Type())
}

func TestInferLoopCarriedMismatch(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	acc, out, next := Untyped("acc"), Untyped("out"), Untyped("next")
	body := Region([]*ops.Value{acc}, []ops.Op{Length(next, acc)}, next)
	s0 := Untyped("s0")
	loop := Loop([]*ops.Value{s0}, body, out)
	r := Region([]*ops.Value{x}, []ops.Op{Construct(s0, x), loop})

	ctx := NewContext()
	err := ctx.Infer(r)
	require.Error(t, err)
	errs := err.(Errors)
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidOperand, errs[0].Kind)
	assert.Same(t, loop, errs[0].Op)
}

func TestInferStructuralError(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	s := Untyped("s")
	r := Region(nil, []ops.Op{Insert(s, Untyped("missing"), x)})

	err := NewContext().Infer(r)
	require.Error(t, err)
	_, isErrors := err.(Errors)
	assert.False(t, isErrors)
	assert.Nil(t, s.Type())
}

func TestInferMaxIterations(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	s0, s1 := Untyped("s0"), Untyped("s1")
	r := Region([]*ops.Value{x}, []ops.Op{Empty(s0), Insert(s1, s0, x)})

	ctx := NewContext(WithMaxIterations(1))
	err := ctx.Infer(r)
	require.Error(t, err)
	assert.Equal(t, []ErrorKind{NoFixpoint}, err.(Errors).Kinds())
}

func TestInferOptions(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := Untyped("s")
	r := Region(nil, []ops.Op{Empty(s)})
	ctx := NewContext(WithDefaultDType(dtypes.Int64), WithLogger(logger))
	require.NoError(t, ctx.Infer(r))
	assert.Equal(t, "seq<tensor<*xi64>, 0>", types.TypeString(s.Type()))
	assert.Contains(t, logs.String(), "msg=refined")
	assert.Contains(t, logs.String(), "value=s")
}
