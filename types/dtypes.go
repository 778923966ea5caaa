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
	"strconv"

	"github.com/gomlx/gopjrt/dtypes"
)

// Numeric codes for tensor element types, as used by the `dtype` attribute of serialized models.
const (
	CodeUndefined  int64 = 0
	CodeFloat      int64 = 1
	CodeUint8      int64 = 2
	CodeInt8       int64 = 3
	CodeUint16     int64 = 4
	CodeInt16      int64 = 5
	CodeInt32      int64 = 6
	CodeInt64      int64 = 7
	CodeString     int64 = 8
	CodeBool       int64 = 9
	CodeFloat16    int64 = 10
	CodeDouble     int64 = 11
	CodeUint32     int64 = 12
	CodeUint64     int64 = 13
	CodeComplex64  int64 = 14
	CodeComplex128 int64 = 15
	CodeBFloat16   int64 = 16
)

type dtypeInfo struct {
	dtype dtypes.DType
	code  int64
	name  string
}

var dtypeTable = [...]dtypeInfo{
	{dtypes.Float32, CodeFloat, "f32"},
	{dtypes.Uint8, CodeUint8, "ui8"},
	{dtypes.Int8, CodeInt8, "i8"},
	{dtypes.Uint16, CodeUint16, "ui16"},
	{dtypes.Int16, CodeInt16, "i16"},
	{dtypes.Int32, CodeInt32, "i32"},
	{dtypes.Int64, CodeInt64, "i64"},
	{dtypes.Bool, CodeBool, "i1"},
	{dtypes.Float16, CodeFloat16, "f16"},
	{dtypes.Float64, CodeDouble, "f64"},
	{dtypes.Uint32, CodeUint32, "ui32"},
	{dtypes.Uint64, CodeUint64, "ui64"},
	{dtypes.Complex64, CodeComplex64, "complex<f32>"},
	{dtypes.Complex128, CodeComplex128, "complex<f64>"},
	{dtypes.BFloat16, CodeBFloat16, "bf16"},
}

// DTypeFromCode maps a numeric element-type code to a scalar type.
// The second result is false for undefined, string, or unknown codes.
func DTypeFromCode(code int64) (dtypes.DType, bool) {
	for i := range dtypeTable {
		if dtypeTable[i].code == code {
			return dtypeTable[i].dtype, true
		}
	}
	return dtypes.InvalidDType, false
}

// DTypeCode returns the numeric element-type code of dtype, or CodeUndefined.
func DTypeCode(dtype dtypes.DType) int64 {
	for i := range dtypeTable {
		if dtypeTable[i].dtype == dtype {
			return dtypeTable[i].code
		}
	}
	return CodeUndefined
}

// DTypeName returns the textual name of a scalar type (e.g. `f32`, `i64`).
func DTypeName(dtype dtypes.DType) string {
	for i := range dtypeTable {
		if dtypeTable[i].dtype == dtype {
			return dtypeTable[i].name
		}
	}
	if dtype == dtypes.InvalidDType {
		return "none"
	}
	return "dtype" + strconv.Itoa(int(dtype))
}

// ParseDType parses the textual name of a scalar type.
func ParseDType(name string) (dtypes.DType, bool) {
	for i := range dtypeTable {
		if dtypeTable[i].name == name {
			return dtypeTable[i].dtype, true
		}
	}
	return dtypes.InvalidDType, false
}
