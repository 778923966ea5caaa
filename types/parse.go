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

package types

import (
	"errors"
	"strconv"
	"strings"
)

// ParseType parses the textual form of a type, as printed by TypeString.
func ParseType(s string) (Type, error) {
	p := typeParser{src: strings.TrimSpace(s)}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return t, nil
}

// ParseTensor parses the textual form of a tensor type.
func ParseTensor(s string) (*Tensor, error) {
	t, err := ParseType(s)
	if err != nil {
		return nil, err
	}
	tt, ok := t.(*Tensor)
	if !ok {
		return nil, errors.New("expected tensor type: " + s)
	}
	return tt, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(msg string) error {
	return errors.New("invalid type " + strconv.Quote(p.src) + " at offset " + strconv.Itoa(p.pos) + ": " + msg)
}

func (p *typeParser) consume(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) parseType() (Type, error) {
	switch {
	case p.consume("tensor<"):
		return p.parseTensorBody()
	case p.consume("seq<"):
		return p.parseSequenceBody()
	case p.consume("none"):
		return nil, nil
	}
	return nil, p.errorf("expected tensor or seq")
}

func (p *typeParser) parseTensorBody() (*Tensor, error) {
	var dims []Dim
	ranked := true
	if p.consume("*x") {
		ranked = false
	} else {
		for {
			start := p.pos
			var d Dim
			if p.consume("?") {
				d = DynamicDim
			} else {
				for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
					p.pos++
				}
				if p.pos == start {
					break
				}
				n, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
				if err != nil {
					return nil, p.errorf(err.Error())
				}
				d = StaticDim(n)
			}
			if !p.consume("x") {
				// Digits which are not followed by 'x' are not a dimension.
				p.pos = start
				break
			}
			dims = append(dims, d)
		}
	}
	// The element type extends to the matching '>'.
	start, depth := p.pos, 0
	for ; p.pos < len(p.src); p.pos++ {
		c := p.src[p.pos]
		if c == '<' {
			depth++
		} else if c == '>' {
			if depth == 0 {
				break
			}
			depth--
		}
	}
	if p.pos >= len(p.src) {
		return nil, p.errorf("unterminated tensor type")
	}
	name := p.src[start:p.pos]
	p.pos++
	dtype, ok := ParseDType(name)
	if !ok {
		p.pos = start
		return nil, p.errorf("unknown element type " + strconv.Quote(name))
	}
	if !ranked {
		return NewUnrankedTensor(dtype), nil
	}
	return &Tensor{DType: dtype, Shape: RankedShape(dims...)}, nil
}

func (p *typeParser) parseSequenceBody() (*Sequence, error) {
	if !p.consume("tensor<") {
		return nil, p.errorf("expected tensor element type")
	}
	elem, err := p.parseTensorBody()
	if err != nil {
		return nil, err
	}
	length := UnknownLength
	p.skipSpace()
	if p.consume(",") {
		p.skipSpace()
		start := p.pos
		if p.consume("?") {
			length = UnknownLength
		} else {
			for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
				p.pos++
			}
			if p.pos == start {
				return nil, p.errorf("expected sequence length")
			}
			n, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
			if err != nil {
				return nil, p.errorf(err.Error())
			}
			length = KnownLength(n)
		}
		p.skipSpace()
	}
	if !p.consume(">") {
		return nil, p.errorf("expected '>'")
	}
	return &Sequence{Elem: elem, Len: length}, nil
}
