package typedesc_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigargs/typedesc"
)

func TestCallableFromFunc(t *testing.T) {
	fn := func(name string, count int, tags ...string) {}

	c, err := typedesc.CallableFromFunc("tag", fn, "name", "count", "tags")
	require.NoError(t, err)
	require.Len(t, c.Signature.Params, 3)

	assert.Equal(t, "name", c.Signature.Params[0].Name)
	assert.Equal(t, reflect.TypeOf(""), c.Signature.Params[0].Type)
	assert.True(t, c.Signature.Params[0].Required())

	assert.Equal(t, typedesc.VarPositional, c.Signature.Params[2].Kind)
	assert.Equal(t, reflect.TypeOf(""), c.Signature.Params[2].Type)
	assert.True(t, c.Signature.HasVarPositional())
	assert.False(t, c.Signature.HasVarKeyword())
}

func TestCallableFromFuncSynthesizedNames(t *testing.T) {
	c, err := typedesc.CallableFromFunc("f", func(a, b int) {})
	require.NoError(t, err)
	assert.Equal(t, "arg0", c.Signature.Params[0].Name)
	assert.Equal(t, "arg1", c.Signature.Params[1].Name)
}

func TestCallableFromFuncRejectsNonFunctions(t *testing.T) {
	_, err := typedesc.CallableFromFunc("x", 42)
	assert.ErrorIs(t, err, typedesc.ErrNotAFunction)

	_, err = typedesc.CallableFromFunc("x", nil)
	assert.ErrorIs(t, err, typedesc.ErrNotAFunction)
}

func TestClassFromStruct(t *testing.T) {
	type reader struct {
		Path      string `arg:"path,required"`
		BatchSize int    `arg:"batch_size"`
		Strict    bool
		internal  int    // unexported, must be ignored
		Ignored   string `arg:"-"`
	}

	cl, err := typedesc.ClassFromStruct("Reader", reader{BatchSize: 64}, "Reads records.")
	require.NoError(t, err)
	assert.Equal(t, "Reads records.", cl.Doc)
	require.NotNil(t, cl.Init)

	params := cl.Init.Signature.Params
	require.Len(t, params, 4) // receiver + path + batch_size + strict
	assert.Equal(t, typedesc.ReceiverName, params[0].Name)

	assert.Equal(t, "path", params[1].Name)
	assert.True(t, params[1].Required())

	assert.Equal(t, "batch_size", params[2].Name)
	require.True(t, params[2].HasDefault)
	assert.Equal(t, 64, params[2].Default)

	assert.Equal(t, "strict", params[3].Name)
	require.True(t, params[3].HasDefault)
	assert.Equal(t, false, params[3].Default)
}

func TestClassFromStructEmbeddedBases(t *testing.T) {
	type base struct {
		Workers int `arg:"workers"`
	}
	type derived struct {
		base
		Name string `arg:"name,required"`
	}

	cl, err := typedesc.ClassFromStruct("Derived", derived{base: base{Workers: 2}}, "")
	require.NoError(t, err)
	require.Len(t, cl.Bases, 1)
	assert.Equal(t, "base", cl.Bases[0].Name)

	// catch-alls are synthesized so inherited parameters propagate
	assert.True(t, cl.Init.Signature.HasVarPositional())
	assert.True(t, cl.Init.Signature.HasVarKeyword())
	assert.False(t, cl.Bases[0].Init.Signature.HasVarKeyword())

	mro := cl.MRO()
	require.Len(t, mro, 2)
	assert.Equal(t, "Derived", mro[0].Name)
}

func TestClassFromStructExplicitCatchAll(t *testing.T) {
	type sink struct {
		Extra map[string]any `arg:"extra,kwargs"`
		Rest  []string       `arg:"rest,args"`
	}

	cl, err := typedesc.ClassFromStruct("Sink", sink{}, "")
	require.NoError(t, err)
	assert.True(t, cl.Init.Signature.HasVarKeyword())
	assert.True(t, cl.Init.Signature.HasVarPositional())

	for _, p := range cl.Init.Signature.Params[1:] {
		assert.True(t, p.Required(), "catch-alls carry no defaults")
	}
}

func TestClassFromStructRejectsNonStructs(t *testing.T) {
	_, err := typedesc.ClassFromStruct("X", 7, "")
	assert.ErrorIs(t, err, typedesc.ErrNotAStruct)

	_, err = typedesc.ClassFromStruct("X", nil, "")
	assert.ErrorIs(t, err, typedesc.ErrNotAStruct)
}

func TestClassFromStructNilPointerPrototype(t *testing.T) {
	type cfg struct {
		Level int `arg:"level"`
	}
	cl, err := typedesc.ClassFromStruct("Cfg", (*cfg)(nil), "")
	require.NoError(t, err)
	require.Len(t, cl.Init.Signature.Params, 2)
	assert.Equal(t, 0, cl.Init.Signature.Params[1].Default)
}

func TestParamFactoryResolvedLazily(t *testing.T) {
	calls := 0
	p := typedesc.Param{Name: "buf", Factory: func() any { calls++; return []int{1, 2} }}

	assert.False(t, p.Required())
	assert.Equal(t, 0, calls)
	assert.Equal(t, []int{1, 2}, p.ResolveDefault())
	assert.Equal(t, 1, calls)
}
