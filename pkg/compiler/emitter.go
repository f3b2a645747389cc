package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"compy/pkg/contract"
	"compy/pkg/support"
)

// EntryPoint is the function the module body is translated into. The
// runtime header declares it and calls it from main.
const EntryPoint = "compy_main"

// hostEntryPoint is defined by the runtime header and calls EntryPoint.
const hostEntryPoint = "main"

const (
	indentUnit = "  "
	terminator = ";"
)

// Scope accumulates the output of one function.
type Scope struct {
	Name       string
	Params     []string
	ReturnType string // empty when not declared

	body   strings.Builder
	depth  int // open blocks
	open   bool
	closed bool
}

func (s *Scope) write(text string) {
	s.body.WriteString(strings.Repeat(indentUnit, s.depth+1))
	s.body.WriteString(text)
	s.body.WriteString("\n")
}

// Emitter collects emitted statements per function. The function receiving
// statements is the top of an explicit stack of open scopes.
//
// Scopes are rendered in the order they first received a line. A scope that
// never received one is placed where it was closed.
type Emitter struct {
	scopes map[string]*Scope
	order  []*Scope
	placed map[*Scope]bool
	stack  []*Scope
}

func NewEmitter() *Emitter {
	return &Emitter{
		scopes: make(map[string]*Scope),
		placed: make(map[*Scope]bool),
	}
}

func (e *Emitter) scope(name string) *Scope {
	s, ok := e.scopes[name]
	if !ok {
		s = &Scope{Name: name}
		e.scopes[name] = s
	}
	return s
}

func (e *Emitter) place(s *Scope) {
	if !e.placed[s] {
		e.placed[s] = true
		e.order = append(e.order, s)
	}
}

// current returns the scope on top of the stack.
func (e *Emitter) current() *Scope {
	contract.Assertf(len(e.stack) > 0, "statement emitted with no open scope")
	return e.stack[len(e.stack)-1]
}

// Depth is the number of open scopes.
func (e *Emitter) Depth() int {
	return len(e.stack)
}

// Defined reports whether a scope called name has been opened.
func (e *Emitter) Defined(name string) bool {
	s, ok := e.scopes[name]
	return ok && (s.open || s.closed)
}

// OpenScope pushes the scope called name. The returned handle closes it; it
// is safe to defer its Close on every exit path.
func (e *Emitter) OpenScope(name string) *ScopeHandle {
	s := e.scope(name)
	contract.Assertf(!s.closed, "scope %q reopened after it was closed", name)
	contract.Assertf(!s.open, "scope %q opened twice", name)
	s.open = true
	e.stack = append(e.stack, s)
	glog.V(5).Infof("open scope %s (depth %d)", name, len(e.stack))
	return &ScopeHandle{e: e, name: name}
}

// CloseScope pops the top scope, which must be expected.
func (e *Emitter) CloseScope(expected string) {
	contract.Assertf(len(e.stack) > 0, "close of scope %q with no open scope", expected)
	s := e.stack[len(e.stack)-1]
	contract.Assertf(s.Name == expected, "close of scope %q while %q is on top", expected, s.Name)
	contract.Assertf(s.depth == 0, "scope %q closed with %d open blocks", expected, s.depth)

	e.stack = e.stack[:len(e.stack)-1]
	s.open = false
	s.closed = true
	e.place(s)
	glog.V(5).Infof("close scope %s (depth %d)", expected, len(e.stack))
}

// EmitStatement appends text as one terminated statement of the current
// scope. Empty text is ignored.
func (e *Emitter) EmitStatement(text string) {
	if text == "" {
		return
	}
	s := e.current()
	e.place(s)
	s.write(text + terminator)
	glog.V(5).Infof("%s: %s%s", s.Name, text, terminator)
}

// OpenBlock appends "header {" to the current scope and indents what
// follows until the matching CloseBlock.
func (e *Emitter) OpenBlock(header string) {
	s := e.current()
	e.place(s)
	s.write(header + " {")
	s.depth++
}

// CloseBlock appends the closing brace of the innermost open block.
func (e *Emitter) CloseBlock() {
	s := e.current()
	if s.depth == 0 {
		contract.Failf("block closed in scope %q with none open", s.Name)
	}
	s.depth--
	s.write("}")
}

// DeclareParameters records the ordered parameter names of a scope.
func (e *Emitter) DeclareParameters(name string, params []string) {
	e.scope(name).Params = append([]string(nil), params...)
}

// DeclareReturnType records the return type name of a scope.
func (e *Emitter) DeclareReturnType(name, typ string) {
	e.scope(name).ReturnType = typ
}

// Finish freezes the emitted scopes into a translation unit. Every scope
// must have been closed.
func (e *Emitter) Finish() *Unit {
	contract.Assertf(len(e.stack) == 0, "%d scopes still open at end of translation", len(e.stack))

	u := &Unit{Functions: make([]Function, 0, len(e.order))}
	for _, s := range e.order {
		ret := s.ReturnType
		if ret == "" {
			ret = "auto"
			if s.Name == EntryPoint {
				ret = "void"
			}
		}
		u.Functions = append(u.Functions, Function{
			Name:       s.Name,
			ReturnType: ret,
			Params:     append([]string(nil), s.Params...),
			Body:       s.body.String(),
		})
	}
	return u
}

// ScopeHandle closes the scope it was returned for exactly once.
type ScopeHandle struct {
	e      *Emitter
	name   string
	closed bool
}

func (h *ScopeHandle) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.e.CloseScope(h.name)
}

// Function is one rendered function of a translation unit.
type Function struct {
	Name       string
	ReturnType string
	Params     []string
	Body       string
}

// Signature renders "ret name(auto p, ...)".
func (f Function) Signature() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = "auto " + p
	}
	return fmt.Sprintf("%s %s(%s)", f.ReturnType, f.Name, strings.Join(params, ", "))
}

// Unit is a finished C++ translation unit.
type Unit struct {
	Functions []Function
}

// Lookup returns the function called name.
func (u *Unit) Lookup(name string) (Function, bool) {
	for _, f := range u.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}

// Render writes the translation unit: the runtime include followed by every
// function in order.
func (u *Unit) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "#include <%s>\n", support.HeaderName); err != nil {
		return err
	}
	for _, f := range u.Functions {
		if _, err := fmt.Fprintf(w, "\n%s\n{\n%s}\n", f.Signature(), f.Body); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unit) String() string {
	var sb strings.Builder
	_ = u.Render(&sb)
	return sb.String()
}
