package pyast

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePython(t *testing.T) *Parser {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not found in PATH")
	}
	return &Parser{Python: "python3"}
}

func TestParse(t *testing.T) {
	p := requirePython(t)

	mod, err := p.Parse("ok.py", []byte("x = 1\nprint(x, 'a', sep='')\n"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	assign, ok := mod.Body[0].(*Assign)
	require.True(t, ok, "got %T", mod.Body[0])
	assert.Equal(t, "x", assign.Targets[0].(*Name).ID)
	assert.Equal(t, &Constant{Meta: assign.Value.(*Constant).Meta, Type: ConstInt, Value: "1"}, assign.Value)

	call := mod.Body[1].(*ExprStmt).Value.(*Call)
	assert.Equal(t, Pos{Line: 2, Col: 0}, call.Position())
	require.Len(t, call.Keywords, 1)
	assert.Equal(t, "sep", call.Keywords[0].Arg)
}

func TestParse_StringConstants(t *testing.T) {
	p := requirePython(t)

	mod, err := p.Parse("s.py", []byte("a = \"caf\u00e9 \\U0001F600\"\nb = \"x\\ud800\"\n"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	a := mod.Body[0].(*Assign).Value.(*Constant)
	assert.Equal(t, ConstStr, a.Type)
	assert.Equal(t, "caf\u00e9 \U0001F600", a.Value)

	b := mod.Body[1].(*Assign).Value.(*Constant)
	assert.Equal(t, ConstSurrogateStr, b.Type)
	assert.Equal(t, `'x\ud800'`, b.Value)
}

func TestParse_SyntaxError(t *testing.T) {
	p := requirePython(t)

	_, err := p.Parse("bad.py", []byte("x = 1\ndef (:\n"))
	serr, ok := err.(*SyntaxError)
	require.True(t, ok, "got %T: %v", err, err)
	assert.Equal(t, "bad.py", serr.File)
	assert.Equal(t, 2, serr.Line)
	assert.NotEmpty(t, serr.Msg)
}

func TestParse_MissingInterpreter(t *testing.T) {
	p := &Parser{Python: "compy-no-such-python"}
	_, err := p.Parse("ok.py", []byte("x = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running compy-no-such-python")
}
