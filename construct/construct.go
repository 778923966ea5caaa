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

package construct

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

// Types

// Ranked tensor type: `tensor<2x?xf32>`. Negative sizes are dynamic dimensions.
func TTensor(dtype dtypes.DType, sizes ...int64) *types.Tensor {
	return types.NewTensor(dtype, sizes...)
}

// Unranked tensor type: `tensor<*xf32>`
func TUnranked(dtype dtypes.DType) *types.Tensor {
	return types.NewUnrankedTensor(dtype)
}

// Rank-0 tensor type: `tensor<i64>`
func TScalar(dtype dtypes.DType) *types.Tensor {
	return types.NewScalarTensor(dtype)
}

// Sequence type with a known length: `seq<tensor<2xf32>, 3>`
func TSeq(elem *types.Tensor, length int64) *types.Sequence {
	return types.NewSequence(elem, types.KnownLength(length))
}

// Sequence type with an unknown length: `seq<tensor<2xf32>>`
func TSeqUnknown(elem *types.Tensor) *types.Sequence {
	return types.NewSequence(elem, types.UnknownLength)
}

// Values

// Value with a declared type, which may be nil.
func Value(name string, declared types.Type) *ops.Value {
	return ops.NewValue(name, declared)
}

// Untyped value: the type will be assigned during inference.
func Untyped(name string) *ops.Value {
	return ops.NewValue(name, nil)
}

// Operations

// Empty sequence with the default element type: `SequenceEmpty()`
func Empty(out *ops.Value) *ops.SequenceEmpty {
	return &ops.SequenceEmpty{Out: out}
}

// Empty sequence with an element-type code: `SequenceEmpty() {dtype = 6}`
func EmptyOf(out *ops.Value, code int64) *ops.SequenceEmpty {
	return &ops.SequenceEmpty{DType: &code, Out: out}
}

// Sequence of tensors: `SequenceConstruct(%a, %b)`
func Construct(out *ops.Value, inputs ...*ops.Value) *ops.SequenceConstruct {
	return &ops.SequenceConstruct{Inputs: inputs, Out: out}
}

// Append a tensor: `SequenceInsert(%s, %t)`
func Insert(out, seq, tensor *ops.Value) *ops.SequenceInsert {
	return &ops.SequenceInsert{Seq: seq, Tensor: tensor, Out: out}
}

// Insert a tensor at a position: `SequenceInsert(%s, %t, %i)`
func InsertAt(out, seq, tensor, position *ops.Value) *ops.SequenceInsert {
	return &ops.SequenceInsert{Seq: seq, Tensor: tensor, Position: position, Out: out}
}

// Remove the last tensor: `SequenceErase(%s)`
func Erase(out, seq *ops.Value) *ops.SequenceErase {
	return &ops.SequenceErase{Seq: seq, Out: out}
}

// Remove the tensor at a position: `SequenceErase(%s, %i)`
func EraseAt(out, seq, position *ops.Value) *ops.SequenceErase {
	return &ops.SequenceErase{Seq: seq, Position: position, Out: out}
}

// Read the tensor at a position: `SequenceAt(%s, %i)`
func At(out, seq, position *ops.Value) *ops.SequenceAt {
	return &ops.SequenceAt{Seq: seq, Position: position, Out: out}
}

// Number of tensors: `SequenceLength(%s)`
func Length(out, seq *ops.Value) *ops.SequenceLength {
	return &ops.SequenceLength{Seq: seq, Out: out}
}

// Operation outside of the sequence family, with declared result types.
func External(name string, ins []*ops.Value, outs ...*ops.Value) *ops.External {
	return &ops.External{Name: name, Ins: ins, Outs: outs}
}

// Region with arguments: `(%a, %b) { ... }`
func Region(args []*ops.Value, body []ops.Op, yield ...*ops.Value) *ops.Region {
	return &ops.Region{Args: args, Ops: body, Yield: yield}
}

// Loop over a body region: `%outs = Loop(%inits) (%args) { ... yield %next }`
func Loop(inits []*ops.Value, body *ops.Region, outs ...*ops.Value) *ops.Loop {
	return &ops.Loop{Inits: inits, Body: body, Outs: outs}
}
