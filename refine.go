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
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

// Refine applies the refinement rule for op, reading the current types of its operands and
// rewriting the type of its result. The result is only rewritten when the rule succeeds and the
// inferred type differs from the current one; changed reports whether it was rewritten.
//
// An operand whose type is not yet known leaves op unchanged without error. defaultDType is the
// element type of an empty sequence without a dtype attribute.
//
// On failure, the returned error is an *Error tied to op, and no type is committed.
func Refine(op ops.SequenceOp, defaultDType dtypes.DType) (changed bool, err error) {
	t, err := infer(op, defaultDType)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Op = op
			return false, e
		}
		return false, &Error{Kind: InvalidOperand, Message: err.Error(), Op: op}
	}
	if t == nil {
		return false, nil
	}
	out := op.Result()
	if types.Equal(out.Type(), t) {
		return false, nil
	}
	out.SetType(t)
	return true, nil
}

// infer returns the refined result type of op, or nil when an operand's type is not yet known.
func infer(op ops.SequenceOp, defaultDType dtypes.DType) (types.Type, error) {
	switch op := op.(type) {
	case *ops.SequenceEmpty:
		return nonNil(EmptySequence(op.DType, defaultDType, op.Out.Declared()))

	case *ops.SequenceConstruct:
		elems := make([]*types.Tensor, len(op.Inputs))
		for i, in := range op.Inputs {
			t, ready, err := tensorOperand(in, "input")
			if !ready || err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return nonNil(ConstructSequence(elems))

	case *ops.SequenceInsert:
		seq, ready, err := sequenceOperand(op.Seq)
		if !ready || err != nil {
			return nil, err
		}
		t, ready, err := tensorOperand(op.Tensor, "tensor")
		if !ready || err != nil {
			return nil, err
		}
		return nonNil(InsertSequence(seq, t))

	case *ops.SequenceErase:
		seq, ready, err := sequenceOperand(op.Seq)
		if !ready || err != nil {
			return nil, err
		}
		return nonNil(EraseSequence(seq))

	case *ops.SequenceAt:
		seq, ready, err := sequenceOperand(op.Seq)
		if !ready || err != nil {
			return nil, err
		}
		return SequenceAt(seq, op.Out.Declared()), nil

	case *ops.SequenceLength:
		seq, ready, err := sequenceOperand(op.Seq)
		if !ready || err != nil {
			return nil, err
		}
		return SequenceLength(seq), nil

	default:
		panic("unknown sequence operation type: " + op.OpName())
	}
}

// nonNil converts a typed nil result into an untyped nil type.
func nonNil(seq *types.Sequence, err error) (types.Type, error) {
	if err != nil {
		return nil, err
	}
	return seq, nil
}

func sequenceOperand(v *ops.Value) (seq *types.Sequence, ready bool, err error) {
	if v == nil {
		return nil, false, newError(InvalidOperand, "missing sequence operand")
	}
	switch t := v.Type().(type) {
	case nil:
		return nil, false, nil
	case *types.Sequence:
		if t == nil || t.Elem == nil {
			return nil, false, nil
		}
		return t, true, nil
	default:
		return nil, false, newError(InvalidOperand, "operand %"+v.Name+" must be a sequence, got "+types.TypeString(t))
	}
}

func tensorOperand(v *ops.Value, role string) (tensor *types.Tensor, ready bool, err error) {
	if v == nil {
		return nil, false, newError(InvalidOperand, "missing "+role+" operand")
	}
	switch t := v.Type().(type) {
	case nil:
		return nil, false, nil
	case *types.Tensor:
		if t == nil {
			return nil, false, nil
		}
		return t, true, nil
	default:
		return nil, false, newError(InvalidOperand, role+" operand %"+v.Name+" must be a tensor, got "+types.TypeString(t))
	}
}
