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
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/seqinfer"
	. "github.com/wdamron/seqinfer/construct"

	"github.com/wdamron/seqinfer/types"
)

func TestRefineScenarios(t *testing.T) {
	s0 := Untyped("s0")
	changed, err := Refine(EmptyOf(s0, types.CodeInt32), DefaultDType)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "seq<tensor<*xi32>, 0>", types.TypeString(s0.Type()))

	a := Value("a", TTensor(dtypes.Float32, 2, 3))
	b := Value("b", TTensor(dtypes.Float32, 2, 4))
	s1 := Untyped("s1")
	_, err = Refine(Construct(s1, a, b), DefaultDType)
	require.NoError(t, err)
	assert.Equal(t, "seq<tensor<2x?xf32>, 2>", types.TypeString(s1.Type()))

	empty := Value("empty", TSeq(TUnranked(dtypes.Float32), 0))
	x := Value("x", TTensor(dtypes.Float32, 5))
	s2 := Untyped("s2")
	_, err = Refine(Insert(s2, empty, x), DefaultDType)
	require.NoError(t, err)
	assert.Equal(t, "seq<tensor<5xf32>, 1>", types.TypeString(s2.Type()))

	y := Value("y", TTensor(dtypes.Float32, 3, 3))
	s3 := Untyped("s3")
	_, err = Refine(Insert(s3, s1, y), DefaultDType)
	require.NoError(t, err)
	assert.Equal(t, "seq<tensor<?x?xf32>, 3>", types.TypeString(s3.Type()))

	s4 := Untyped("s4")
	_, err = Refine(Erase(s4, empty), DefaultDType)
	require.Error(t, err)
	assert.Equal(t, EmptySequenceErase, err.(*Error).Kind)
	assert.Nil(t, s4.Type(), "no type is committed on failure")

	n := Untyped("n")
	_, err = Refine(Length(n, s3), DefaultDType)
	require.NoError(t, err)
	assert.Equal(t, "tensor<i64>", types.TypeString(n.Type()))
}

func TestRefineIdempotent(t *testing.T) {
	a := Value("a", TTensor(dtypes.Float32, 2, 3))
	s := Untyped("s")
	op := Construct(s, a, a)

	changed, err := Refine(op, DefaultDType)
	require.NoError(t, err)
	assert.True(t, changed)
	first := s.Type()

	changed, err = Refine(op, DefaultDType)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, first, s.Type())
}

func TestRefineNotReady(t *testing.T) {
	seq := Untyped("seq")
	x := Value("x", TTensor(dtypes.Float32, 5))
	out := Untyped("out")
	changed, err := Refine(Insert(out, seq, x), DefaultDType)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Nil(t, out.Type())
}

func TestRefineInvalidOperand(t *testing.T) {
	x := Value("x", TTensor(dtypes.Float32, 5))
	out := Untyped("out")
	op := Length(out, x)
	_, err := Refine(op, DefaultDType)
	require.Error(t, err)
	e := err.(*Error)
	assert.Equal(t, InvalidOperand, e.Kind)
	assert.Same(t, op, e.Op)
	assert.Contains(t, e.Error(), "%out = SequenceLength(%x)")
}

func TestRefineSequenceAt(t *testing.T) {
	s := Value("s", TSeq(TTensor(dtypes.Float32, 2, -1), 2))
	i := Value("i", TScalar(dtypes.Int64))

	out := Value("out", TUnranked(dtypes.Float32))
	changed, err := Refine(At(out, s, i), DefaultDType)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "tensor<2x?xf32>", types.TypeString(out.Type()))

	declared := Value("declared", TTensor(dtypes.Float32, 2, 9))
	changed, err = Refine(At(declared, s, i), DefaultDType)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "tensor<2x9xf32>", types.TypeString(declared.Type()))
}

func TestRefineDefaultDType(t *testing.T) {
	s := Untyped("s")
	_, err := Refine(Empty(s), dtypes.Float64)
	require.NoError(t, err)
	assert.Equal(t, "seq<tensor<*xf64>, 0>", types.TypeString(s.Type()))

	declared := Value("declared", TSeqUnknown(TUnranked(dtypes.Int64)))
	_, err = Refine(EmptyOf(declared, types.CodeFloat), DefaultDType)
	require.Error(t, err)
	assert.Equal(t, AttributeTypeMismatch, err.(*Error).Kind)
	assert.Equal(t, "seq<tensor<*xi64>>", types.TypeString(declared.Type()))
}
