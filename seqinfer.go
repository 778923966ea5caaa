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

// seqinfer provides static type refinement for sequences of tensors within a graph compiler.
//
// A sequence type summarizes the tensors it may hold with a single tensor type (the element
// summary) and tracks its length when the length is known statically. Refinement rules for the
// six sequence operations narrow unknown result types toward the most specific type supported by
// the operations which produced them:
//
//   SequenceEmpty       seq<tensor<*xT>, 0>
//   SequenceConstruct   join of the element types, with a known length
//   SequenceInsert      the inserted type for empty sequences, otherwise the join; length + 1
//   SequenceErase       unchanged element summary; length - 1, failing for empty sequences
//   SequenceAt          the element summary, when the result type is still unranked
//   SequenceLength      tensor<i64>
//
// Each rule is a pure function of its operand types; the rules are idempotent and monotone, so
// they may be re-applied in any order until a fixpoint is reached. Context applies them across
// a region, including nested loop bodies, until no type changes.
//
// Supported Features:
//
//   * Exact join (least upper bound) of tensor shapes with static and dynamic dimensions
//   * Known and unknown sequence lengths, without sentinel values
//   * Loop-carried sequences, widened until the loop body is stable
//   * Per-operation failures which do not block refinement of unrelated operations
package seqinfer
