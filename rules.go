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

package seqinfer

import (
	"strconv"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/wdamron/seqinfer/types"
)

// DefaultDType is the element type of SequenceEmpty when no dtype attribute is given, unless
// another default is configured.
const DefaultDType = dtypes.Float32

// EmptySequence infers the type of an empty sequence.
//
// The element type is resolved from the requested element-type code, or is defaultDType when
// requested is nil. If declared is a sequence type which already names a different element
// type, EmptySequence fails with AttributeTypeMismatch.
func EmptySequence(requested *int64, defaultDType dtypes.DType, declared types.Type) (*types.Sequence, error) {
	dtype := defaultDType
	if requested != nil {
		var ok bool
		if dtype, ok = types.DTypeFromCode(*requested); !ok {
			return nil, newError(UnsupportedDType, "unsupported dtype code "+strconv.FormatInt(*requested, 10))
		}
	}
	if seq, ok := declared.(*types.Sequence); ok && seq != nil && seq.Elem != nil &&
		seq.Elem.DType != dtypes.InvalidDType && seq.Elem.DType != dtype {
		return nil, newError(AttributeTypeMismatch, "dtype "+types.DTypeName(dtype)+
			" does not match the declared element type "+types.DTypeName(seq.Elem.DType))
	}
	return types.NewSequence(types.NewUnrankedTensor(dtype), types.KnownLength(0)), nil
}

// ConstructSequence infers the type of a sequence constructed from one or more tensors. The
// element summary is the join of all element shapes, and the length is the number of tensors.
func ConstructSequence(elems []*types.Tensor) (*types.Sequence, error) {
	if len(elems) == 0 {
		return nil, newError(InvalidOperand, "at least one tensor is required")
	}
	elem := elems[0]
	for _, t := range elems[1:] {
		if t.DType != elem.DType {
			return nil, newError(DTypeMismatch, "element types of the tensors in a sequence must be the same: "+
				types.DTypeName(elem.DType)+" and "+types.DTypeName(t.DType))
		}
		elem = types.Join(elem, t)
	}
	return types.NewSequence(elem, types.KnownLength(int64(len(elems)))), nil
}

// InsertSequence infers the type of seq after inserting a tensor.
//
// Inserting into an empty sequence takes the tensor's type exactly; this is the only case
// in which a sequence's element summary becomes more specific.
func InsertSequence(seq *types.Sequence, tensor *types.Tensor) (*types.Sequence, error) {
	if seq.Elem.DType != tensor.DType {
		return nil, newError(DTypeMismatch, "element types of the tensor in the sequence and the inserted tensor must be the same: "+
			types.DTypeName(seq.Elem.DType)+" and "+types.DTypeName(tensor.DType))
	}
	if seq.Len.IsEmpty() {
		return types.NewSequence(tensor, types.KnownLength(1)), nil
	}
	return types.NewSequence(types.Join(seq.Elem, tensor), seq.Len.Inc()), nil
}

// EraseSequence infers the type of seq after removing a tensor. The element summary remains an
// upper bound for the shorter sequence.
func EraseSequence(seq *types.Sequence) (*types.Sequence, error) {
	if seq.Len.IsEmpty() {
		return nil, newError(EmptySequenceErase, "erase from an empty sequence")
	}
	return types.NewSequence(seq.Elem, seq.Len.Dec()), nil
}

// SequenceAt infers the type of a tensor read from seq, given the declared result type. An
// undeclared result takes the sequence's element summary. A declared result is replaced by the
// summary only when the summary is ranked and the declaration is unranked; a ranked declaration
// is never overwritten.
func SequenceAt(seq *types.Sequence, declared types.Type) types.Type {
	switch decl := declared.(type) {
	case nil:
		return seq.Elem
	case *types.Tensor:
		if decl == nil || (!decl.IsRanked() && seq.Elem.IsRanked()) {
			return seq.Elem
		}
	}
	return declared
}

// SequenceLength infers the type of a sequence length: always a rank-0 tensor of 64-bit integers.
// Only the operand's kind matters, and Refine checks it before applying the rule.
func SequenceLength(_ *types.Sequence) *types.Tensor {
	return lengthType
}

var lengthType = types.NewScalarTensor(dtypes.Int64)
