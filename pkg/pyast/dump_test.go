package pyast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump_HostLayout(t *testing.T) {
	mod, err := Decode(strings.NewReader(returnFixture))
	require.NoError(t, err)

	want := `Module(
  body=[
    FunctionDef(
      name='f',
      args=arguments(
        args=[
          arg(arg='n')]),
      body=[
        Return(
          value=BinOp(
            left=Name(id='n', ctx=Load()),
            op=Mult(),
            right=Constant(value=2)))],
      returns=Name(id='int', ctx=Load()))])`
	assert.Equal(t, want, Dump(mod))

	ret := mod.Body[0].(*FunctionDef).Body[0].(*Return)
	assert.Equal(t, "Name(id='n', ctx=Load())", Dump(ret.Value.(*BinOp).Left))
}

func TestDump_HandBuilt(t *testing.T) {
	out := Dump(&Name{ID: "counter"})
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, `"counter"`)
	assert.Equal(t, "None", Dump(nil))
}

func TestSdump(t *testing.T) {
	out := Sdump(&Return{Value: &Name{ID: "x"}})
	assert.Contains(t, out, "Return")
	assert.Contains(t, out, "ID:")
}

func TestPyRepr(t *testing.T) {
	tests := map[string]string{
		"abc":   `'abc'`,
		"it's":  `"it's"`,
		`a'b"c`: `'a\'b"c'`,
		"a\nb":  `'a\nb'`,
		"tab\t": `'tab\t'`,
		`back\`: `'back\\'`,
		"\x01":  `'\x01'`,
		"":      `''`,
	}
	for in, want := range tests {
		assert.Equal(t, want, pyRepr(in), "pyRepr(%q)", in)
	}
}
