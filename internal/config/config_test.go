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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/seqinfer"
	. "github.com/wdamron/seqinfer/construct"
	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFile(t, filepath.Join(root, ".seqinfer.yaml"), "defaultDType: i64\nmaxIterations: 8\n")

	cfg, path, err := Find(nested)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, filepath.Join(root, ".seqinfer.yaml"), path)
	assert.Equal(t, "i64", cfg.DefaultDType)
	assert.Equal(t, 8, cfg.MaxIterations)
}

func TestFindPrefersFirstName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "seqinfer.yaml"), "defaultDType: f64\n")
	writeFile(t, filepath.Join(dir, ".seqinfer.yaml"), "defaultDType: i8\n")

	cfg, path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "seqinfer.yaml"), path)
	assert.Equal(t, "f64", cfg.DefaultDType)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "maxIterations: [1\n")
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")

	dtype := filepath.Join(dir, "dtype.yaml")
	writeFile(t, dtype, "defaultDType: q4\n")
	_, err = LoadFile(dtype)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown element type "q4"`)

	negative := filepath.Join(dir, "negative.yaml")
	writeFile(t, negative, "maxIterations: -2\n")
	_, err = LoadFile(negative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestOptions(t *testing.T) {
	cfg := &Config{DefaultDType: "i32", MaxIterations: 4}

	opts, err := cfg.Options(Overrides{})
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	s := Untyped("s")
	r := Region(nil, []ops.Op{Empty(s)})
	require.NoError(t, seqinfer.NewContext(opts...).Infer(r))
	assert.Equal(t, "seq<tensor<*xi32>, 0>", typeString(s))

	opts, err = cfg.Options(Overrides{DefaultDType: "bf16"})
	require.NoError(t, err)
	s = Untyped("s")
	r = Region(nil, []ops.Op{Empty(s)})
	require.NoError(t, seqinfer.NewContext(opts...).Infer(r))
	assert.Equal(t, "seq<tensor<*xbf16>, 0>", typeString(s))

	_, err = cfg.Options(Overrides{DefaultDType: "float"})
	require.Error(t, err)

	var none *Config
	opts, err = none.Options(Overrides{MaxIterations: 2})
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func typeString(v *ops.Value) string { return types.TypeString(v.Type()) }
