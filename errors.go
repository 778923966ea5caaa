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
	"strings"

	"github.com/wdamron/seqinfer/ops"
)

// ErrorKind classifies a refinement failure. All kinds are validation failures of a malformed
// graph; none are transient.
type ErrorKind uint8

const (
	// A tensor's element type disagrees with the element type of a sequence, or of another tensor.
	DTypeMismatch ErrorKind = iota + 1
	// Erase from a sequence which is statically known to be empty.
	EmptySequenceErase
	// The element type requested by SequenceEmpty disagrees with the declared result type.
	AttributeTypeMismatch
	// An element-type code does not name a supported element type.
	UnsupportedDType
	// An operand has the wrong kind of type (e.g. a tensor where a sequence is required), or is missing.
	InvalidOperand
	// Inference did not reach a fixpoint within the iteration limit.
	NoFixpoint
)

func (k ErrorKind) String() string {
	switch k {
	case DTypeMismatch:
		return "dtype-mismatch"
	case EmptySequenceErase:
		return "empty-sequence-erase"
	case AttributeTypeMismatch:
		return "attribute-type-mismatch"
	case UnsupportedDType:
		return "unsupported-dtype"
	case InvalidOperand:
		return "invalid-operand"
	case NoFixpoint:
		return "no-fixpoint"
	default:
		return "unknown"
	}
}

// Error is a refinement failure, tied to the offending operation when one is known.
type Error struct {
	Kind    ErrorKind
	Message string
	Op      ops.Op
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string {
	if e.Op == nil {
		return e.Kind.String() + ": " + e.Message
	}
	return ops.OpString(e.Op) + ": " + e.Kind.String() + ": " + e.Message
}

// Diagnostic returns the (kind, message) pair reported for the failure.
func (e *Error) Diagnostic() (ErrorKind, string) { return e.Kind, e.Message }

// Errors is a list of refinement failures for distinct operations.
type Errors []*Error

func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(errs[0].Error())
	for _, err := range errs[1:] {
		sb.WriteString("; ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Kinds returns the kind of each failure, in order.
func (errs Errors) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(errs))
	for i, err := range errs {
		kinds[i] = err.Kind
	}
	return kinds
}
