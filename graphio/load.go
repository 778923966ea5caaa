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

// Package graphio reads regions of sequence operations from YAML graph descriptions, and
// writes the values of a region together with their types.
package graphio

import (
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

// Graph is the YAML form of a region.
type Graph struct {
	Inputs []ValueDecl `yaml:"inputs"`
	Ops    []OpDecl    `yaml:"ops"`
	Yield  []string    `yaml:"yield,omitempty"`
}

// ValueDecl declares a region argument. Type is optional.
type ValueDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// OpDecl declares an operation. Types optionally declares the initial type of each result.
type OpDecl struct {
	Op       string   `yaml:"op"`
	Name     string   `yaml:"name,omitempty"`
	Operands []string `yaml:"operands,omitempty"`
	Results  []string `yaml:"results"`
	Types    []string `yaml:"types,omitempty"`
	Attrs    Attrs    `yaml:"attrs,omitempty"`
	Body     *Graph   `yaml:"body,omitempty"`
}

// Attrs holds operation attributes.
type Attrs struct {
	DType *int64 `yaml:"dtype,omitempty"`
}

// LoadFile reads the graph description at path.
func LoadFile(path string) (*ops.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open graph")
	}
	defer f.Close()
	r, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return r, nil
}

// Load decodes a graph description and builds the region it describes. Unknown fields,
// duplicate value names, and uses of undefined values are errors.
func Load(r io.Reader) (*ops.Region, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var g Graph
	if err := dec.Decode(&g); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty graph description")
		}
		return nil, errors.Wrap(err, "decode graph")
	}
	return Build(&g)
}

// Build converts a decoded graph into a region.
func Build(g *Graph) (*ops.Region, error) {
	l := loader{names: set.New[string](64)}
	return l.region(g, nil)
}

type scope map[string]*ops.Value

type loader struct {
	names *set.Set[string]
}

func (l *loader) define(sc scope, name string, declared string) (*ops.Value, error) {
	if name == "" {
		return nil, errors.New("missing value name")
	}
	if !l.names.Insert(name) {
		return nil, errors.Errorf("value %%%s is defined more than once", name)
	}
	var t types.Type
	if declared != "" {
		var err error
		if t, err = types.ParseType(declared); err != nil {
			return nil, errors.Wrapf(err, "type of %%%s", name)
		}
	}
	v := ops.NewValue(name, t)
	sc[name] = v
	return v, nil
}

func lookup(scopes []scope, name string) (*ops.Value, error) {
	for i := len(scopes) - 1; i >= 0; i-- {
		if v, ok := scopes[i][name]; ok {
			return v, nil
		}
	}
	return nil, errors.Errorf("value %%%s is not defined", name)
}

func (l *loader) region(g *Graph, enclosing []scope) (*ops.Region, error) {
	sc := make(scope, len(g.Inputs)+len(g.Ops))
	r := &ops.Region{}
	for _, in := range g.Inputs {
		arg, err := l.define(sc, in.Name, in.Type)
		if err != nil {
			return nil, errors.Wrap(err, "input")
		}
		r.Args = append(r.Args, arg)
	}

	// Results are defined before any operand is resolved, so operations may appear in any order.
	results := make([][]*ops.Value, len(g.Ops))
	for i := range g.Ops {
		decl := &g.Ops[i]
		if len(decl.Types) > 0 && len(decl.Types) != len(decl.Results) {
			return nil, errors.Errorf("%s: %d types declared for %d results", decl.Op, len(decl.Types), len(decl.Results))
		}
		for j, name := range decl.Results {
			declared := ""
			if len(decl.Types) > 0 {
				declared = decl.Types[j]
			}
			v, err := l.define(sc, name, declared)
			if err != nil {
				return nil, errors.Wrap(err, decl.Op)
			}
			results[i] = append(results[i], v)
		}
	}

	scopes := append(enclosing[:len(enclosing):len(enclosing)], sc)
	for i := range g.Ops {
		op, err := l.op(&g.Ops[i], results[i], scopes)
		if err != nil {
			return nil, errors.Wrapf(err, "op %d", i)
		}
		r.Add(op)
	}
	for _, name := range g.Yield {
		v, err := lookup(scopes, name)
		if err != nil {
			return nil, errors.Wrap(err, "yield")
		}
		r.Yield = append(r.Yield, v)
	}
	return r, nil
}

func (l *loader) op(decl *OpDecl, results []*ops.Value, scopes []scope) (ops.Op, error) {
	operands := make([]*ops.Value, len(decl.Operands))
	for i, name := range decl.Operands {
		v, err := lookup(scopes, name)
		if err != nil {
			return nil, errors.Wrap(err, decl.Op)
		}
		operands[i] = v
	}
	arity := func(min, max, nresults int) error {
		if len(operands) < min || len(operands) > max {
			if min == max {
				return errors.Errorf("%s: expected %d operands, found %d", decl.Op, min, len(operands))
			}
			return errors.Errorf("%s: expected %d to %d operands, found %d", decl.Op, min, max, len(operands))
		}
		if nresults >= 0 && len(results) != nresults {
			return errors.Errorf("%s: expected %d results, found %d", decl.Op, nresults, len(results))
		}
		return nil
	}
	optional := func(i int) *ops.Value {
		if i < len(operands) {
			return operands[i]
		}
		return nil
	}
	if decl.Attrs.DType != nil && decl.Op != "SequenceEmpty" {
		return nil, errors.Errorf("%s: unexpected dtype attribute", decl.Op)
	}
	if decl.Body != nil && decl.Op != "Loop" {
		return nil, errors.Errorf("%s: unexpected body", decl.Op)
	}

	switch decl.Op {
	case "SequenceEmpty":
		if err := arity(0, 0, 1); err != nil {
			return nil, err
		}
		return &ops.SequenceEmpty{DType: decl.Attrs.DType, Out: results[0]}, nil

	case "SequenceConstruct":
		if err := arity(1, math.MaxInt, 1); err != nil {
			return nil, err
		}
		return &ops.SequenceConstruct{Inputs: operands, Out: results[0]}, nil

	case "SequenceInsert":
		if err := arity(2, 3, 1); err != nil {
			return nil, err
		}
		return &ops.SequenceInsert{Seq: operands[0], Tensor: operands[1], Position: optional(2), Out: results[0]}, nil

	case "SequenceErase":
		if err := arity(1, 2, 1); err != nil {
			return nil, err
		}
		return &ops.SequenceErase{Seq: operands[0], Position: optional(1), Out: results[0]}, nil

	case "SequenceAt":
		if err := arity(2, 2, 1); err != nil {
			return nil, err
		}
		return &ops.SequenceAt{Seq: operands[0], Position: operands[1], Out: results[0]}, nil

	case "SequenceLength":
		if err := arity(1, 1, 1); err != nil {
			return nil, err
		}
		return &ops.SequenceLength{Seq: operands[0], Out: results[0]}, nil

	case "Loop":
		if decl.Body == nil {
			return nil, errors.New("Loop: missing body")
		}
		n := len(operands)
		if err := arity(n, n, n); err != nil {
			return nil, err
		}
		if len(decl.Body.Inputs) != n || len(decl.Body.Yield) != n {
			return nil, errors.Errorf("Loop: %d initial values, %d body inputs, %d yielded",
				n, len(decl.Body.Inputs), len(decl.Body.Yield))
		}
		body, err := l.region(decl.Body, scopes)
		if err != nil {
			return nil, errors.Wrap(err, "Loop body")
		}
		return &ops.Loop{Inits: operands, Body: body, Outs: results}, nil

	case "External":
		if decl.Name == "" {
			return nil, errors.New("External: missing name")
		}
		return &ops.External{Name: decl.Name, Ins: operands, Outs: results}, nil

	case "":
		return nil, errors.New("missing op kind")
	}
	return nil, errors.Errorf("unknown op kind %q", decl.Op)
}
