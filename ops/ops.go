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
	"github.com/wdamron/seqinfer/types"
)

// Value is an SSA value: a region argument or an operation result. Each value carries a
// type slot which is rewritten as inference refines the value, and the type declared by the
// host, which is never rewritten.
type Value struct {
	Name     string
	declared types.Type
	inferred types.Type
}

// NewValue returns a value with the given name and declared type. The type may be nil.
func NewValue(name string, declared types.Type) *Value {
	return &Value{Name: name, declared: declared, inferred: declared}
}

// Get the declared or inferred type of v. The type is nil when it is not yet known.
func (v *Value) Type() types.Type { return v.inferred }

// Get the type declared for v when it was created, or nil.
func (v *Value) Declared() types.Type { return v.declared }

// Assign a type to v. Type assignments should occur indirectly, during inference.
func (v *Value) SetType(t types.Type) { v.inferred = t }

// Op is the base for all operations.
type Op interface {
	// Name of the operation kind.
	OpName() string
	// Operands returns the values used by the operation, excluding absent optional operands.
	Operands() []*Value
	// Results returns the values defined by the operation.
	Results() []*Value
}

// SequenceOp is the closed set of operations on sequences of tensors. Each sequence operation
// defines exactly one result.
type SequenceOp interface {
	Op
	Result() *Value
	sequenceOp()
}

var (
	_ SequenceOp = (*SequenceEmpty)(nil)
	_ SequenceOp = (*SequenceConstruct)(nil)
	_ SequenceOp = (*SequenceInsert)(nil)
	_ SequenceOp = (*SequenceErase)(nil)
	_ SequenceOp = (*SequenceAt)(nil)
	_ SequenceOp = (*SequenceLength)(nil)

	_ Op = (*Loop)(nil)
	_ Op = (*External)(nil)
)

func (*SequenceEmpty) sequenceOp()     {}
func (*SequenceConstruct) sequenceOp() {}
func (*SequenceInsert) sequenceOp()    {}
func (*SequenceErase) sequenceOp()     {}
func (*SequenceAt) sequenceOp()        {}
func (*SequenceLength) sequenceOp()    {}

// Create an empty sequence. DType optionally holds the numeric code of the element type.
type SequenceEmpty struct {
	DType *int64
	Out   *Value
}

// "SequenceEmpty"
func (op *SequenceEmpty) OpName() string     { return "SequenceEmpty" }
func (op *SequenceEmpty) Operands() []*Value { return nil }
func (op *SequenceEmpty) Results() []*Value  { return []*Value{op.Out} }
func (op *SequenceEmpty) Result() *Value     { return op.Out }

// Create a sequence from one or more tensors.
type SequenceConstruct struct {
	Inputs []*Value
	Out    *Value
}

// "SequenceConstruct"
func (op *SequenceConstruct) OpName() string     { return "SequenceConstruct" }
func (op *SequenceConstruct) Operands() []*Value { return op.Inputs }
func (op *SequenceConstruct) Results() []*Value  { return []*Value{op.Out} }
func (op *SequenceConstruct) Result() *Value     { return op.Out }

// Insert a tensor into a sequence, optionally at Position.
type SequenceInsert struct {
	Seq      *Value
	Tensor   *Value
	Position *Value
	Out      *Value
}

// "SequenceInsert"
func (op *SequenceInsert) OpName() string     { return "SequenceInsert" }
func (op *SequenceInsert) Operands() []*Value { return operands(op.Seq, op.Tensor, op.Position) }
func (op *SequenceInsert) Results() []*Value  { return []*Value{op.Out} }
func (op *SequenceInsert) Result() *Value     { return op.Out }

// Remove a tensor from a sequence, optionally at Position.
type SequenceErase struct {
	Seq      *Value
	Position *Value
	Out      *Value
}

// "SequenceErase"
func (op *SequenceErase) OpName() string     { return "SequenceErase" }
func (op *SequenceErase) Operands() []*Value { return operands(op.Seq, op.Position) }
func (op *SequenceErase) Results() []*Value  { return []*Value{op.Out} }
func (op *SequenceErase) Result() *Value     { return op.Out }

// Read the tensor at Position within a sequence.
type SequenceAt struct {
	Seq      *Value
	Position *Value
	Out      *Value
}

// "SequenceAt"
func (op *SequenceAt) OpName() string     { return "SequenceAt" }
func (op *SequenceAt) Operands() []*Value { return operands(op.Seq, op.Position) }
func (op *SequenceAt) Results() []*Value  { return []*Value{op.Out} }
func (op *SequenceAt) Result() *Value     { return op.Out }

// Query the number of tensors within a sequence.
type SequenceLength struct {
	Seq *Value
	Out *Value
}

// "SequenceLength"
func (op *SequenceLength) OpName() string     { return "SequenceLength" }
func (op *SequenceLength) Operands() []*Value { return operands(op.Seq) }
func (op *SequenceLength) Results() []*Value  { return []*Value{op.Out} }
func (op *SequenceLength) Result() *Value     { return op.Out }

// External is an operation outside of the sequence family. Its result types are declared by
// the host and are never refined.
type External struct {
	Name string
	Ins  []*Value
	Outs []*Value
}

// Returns the name of the external operation.
func (op *External) OpName() string     { return op.Name }
func (op *External) Operands() []*Value { return op.Ins }
func (op *External) Results() []*Value  { return op.Outs }

func operands(vs ...*Value) []*Value {
	n := 0
	for _, v := range vs {
		if v != nil {
			n++
		}
	}
	if n == len(vs) {
		return vs
	}
	present := make([]*Value, 0, n)
	for _, v := range vs {
		if v != nil {
			present = append(present, v)
		}
	}
	return present
}
