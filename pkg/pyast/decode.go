package pyast

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Decode reads one tree serialised by the parser helper and maps it onto the
// typed node set. A serialised syntax error is returned as *SyntaxError.
func Decode(r io.Reader) (*Module, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decoding syntax tree")
	}
	if m, ok := v.(map[string]any); ok {
		if e, ok := m["_error"].(map[string]any); ok {
			return nil, toSyntaxError(e)
		}
	}

	raw, err := toRaw(v)
	if err != nil {
		return nil, errors.Wrap(err, "decoding syntax tree")
	}
	o, ok := raw.(*Object)
	if !ok || o.Type != "Module" {
		return nil, errors.Errorf("syntax tree root is %T, not a Module", raw)
	}

	b := &builder{}
	mod := &Module{Meta: meta(o), Body: b.stmts(o, "body")}
	if b.err != nil {
		return nil, b.err
	}
	return mod, nil
}

func meta(o *Object) Meta {
	return Meta{Pos: o.Pos, Raw: o}
}

var constTypes = map[string]ConstType{
	"NoneType": ConstNone,
	"bool":     ConstBool,
	"int":      ConstInt,
	"str":      ConstStr,
	"float":    ConstFloat,
	"bytes":    ConstBytes,
	"complex":  ConstComplex,
	"ellipsis": ConstEllipsis,

	"str-surrogate": ConstSurrogateStr,
}

// builder maps raw objects onto typed nodes, keeping the first shape error.
type builder struct {
	err error
}

func (b *builder) failf(o *Object, format string, args ...any) {
	if b.err == nil {
		b.err = errors.Errorf("malformed %s node at %s: %s", o.Type, o.Pos, fmt.Sprintf(format, args...))
	}
}

func (b *builder) object(o *Object, name string) *Object {
	switch v := o.Get(name).(type) {
	case *Object:
		return v
	case nil:
		return nil
	}
	b.failf(o, "field %s is not a node", name)
	return nil
}

// objects returns the named list field. Entries may be nil (e.g. kw_defaults).
func (b *builder) objects(o *Object, name string) []*Object {
	v := o.Get(name)
	if v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		b.failf(o, "field %s is not a list", name)
		return nil
	}
	out := make([]*Object, len(items))
	for i, item := range items {
		switch item := item.(type) {
		case *Object:
			out[i] = item
		case nil:
		default:
			b.failf(o, "field %s[%d] is %T", name, i, item)
		}
	}
	return out
}

func (b *builder) str(o *Object, name string) string {
	switch v := o.Get(name).(type) {
	case string:
		return v
	case nil:
		return ""
	}
	b.failf(o, "field %s is not a string", name)
	return ""
}

func (b *builder) flag(o *Object, name string) bool {
	switch v := o.Get(name).(type) {
	case bool:
		return v
	case json.Number:
		return v.String() != "0"
	}
	return false
}

func (b *builder) op(o *Object, name string) Operator {
	if op := b.object(o, name); op != nil {
		return Operator(op.Type)
	}
	b.failf(o, "missing operator %s", name)
	return ""
}

func (b *builder) ops(o *Object, name string) []Operator {
	objs := b.objects(o, name)
	out := make([]Operator, 0, len(objs))
	for _, op := range objs {
		if op == nil {
			b.failf(o, "nil operator in %s", name)
			continue
		}
		out = append(out, Operator(op.Type))
	}
	return out
}

func (b *builder) stmts(o *Object, name string) []Stmt {
	objs := b.objects(o, name)
	out := make([]Stmt, 0, len(objs))
	for _, s := range objs {
		if s == nil {
			b.failf(o, "nil statement in %s", name)
			continue
		}
		out = append(out, b.stmt(s))
	}
	return out
}

func (b *builder) exprs(o *Object, name string) []Expr {
	objs := b.objects(o, name)
	out := make([]Expr, len(objs))
	for i, e := range objs {
		if e != nil {
			out[i] = b.expr(e)
		}
	}
	return out
}

func (b *builder) field(o *Object, name string) Expr {
	if e := b.object(o, name); e != nil {
		return b.expr(e)
	}
	return nil
}

func (b *builder) stmt(o *Object) Stmt {
	switch o.Type {
	case "FunctionDef":
		return &FunctionDef{
			Meta:       meta(o),
			Name:       b.str(o, "name"),
			Args:       b.arguments(b.object(o, "args")),
			Body:       b.stmts(o, "body"),
			Decorators: b.exprs(o, "decorator_list"),
			Returns:    b.field(o, "returns"),
		}
	case "Assign":
		return &Assign{Meta: meta(o), Targets: b.exprs(o, "targets"), Value: b.field(o, "value")}
	case "AnnAssign":
		return &AnnAssign{
			Meta:       meta(o),
			Target:     b.field(o, "target"),
			Annotation: b.field(o, "annotation"),
			Value:      b.field(o, "value"),
			Simple:     b.flag(o, "simple"),
		}
	case "AugAssign":
		return &AugAssign{Meta: meta(o), Target: b.field(o, "target"), Op: b.op(o, "op"), Value: b.field(o, "value")}
	case "While":
		return &While{Meta: meta(o), Test: b.field(o, "test"), Body: b.stmts(o, "body"), Orelse: b.stmts(o, "orelse")}
	case "For":
		return &For{
			Meta:   meta(o),
			Target: b.field(o, "target"),
			Iter:   b.field(o, "iter"),
			Body:   b.stmts(o, "body"),
			Orelse: b.stmts(o, "orelse"),
		}
	case "Return":
		return &Return{Meta: meta(o), Value: b.field(o, "value")}
	case "Expr":
		return &ExprStmt{Meta: meta(o), Value: b.field(o, "value")}
	}
	return &Unknown{Meta: meta(o), Type: o.Type}
}

func (b *builder) arguments(o *Object) *Arguments {
	if o == nil {
		return &Arguments{}
	}
	return &Arguments{
		Meta:       meta(o),
		PosOnly:    b.args(o, "posonlyargs"),
		Args:       b.args(o, "args"),
		Vararg:     b.arg(b.object(o, "vararg")),
		KwOnly:     b.args(o, "kwonlyargs"),
		KwDefaults: b.exprs(o, "kw_defaults"),
		Kwarg:      b.arg(b.object(o, "kwarg")),
		Defaults:   b.exprs(o, "defaults"),
	}
}

func (b *builder) args(o *Object, name string) []*Arg {
	objs := b.objects(o, name)
	out := make([]*Arg, 0, len(objs))
	for _, a := range objs {
		if a != nil {
			out = append(out, b.arg(a))
		}
	}
	return out
}

func (b *builder) arg(o *Object) *Arg {
	if o == nil {
		return nil
	}
	return &Arg{Meta: meta(o), Name: b.str(o, "arg"), Annotation: b.field(o, "annotation")}
}

func (b *builder) expr(o *Object) Expr {
	switch o.Type {
	case "Index":
		// Python < 3.9 wraps plain subscripts.
		return b.field(o, "value")
	case "Subscript":
		return &Subscript{Meta: meta(o), Value: b.field(o, "value"), Slice: b.field(o, "slice")}
	case "IfExp":
		return &IfExp{Meta: meta(o), Test: b.field(o, "test"), Body: b.field(o, "body"), Orelse: b.field(o, "orelse")}
	case "Compare":
		return &Compare{Meta: meta(o), Left: b.field(o, "left"), Ops: b.ops(o, "ops"), Comparators: b.exprs(o, "comparators")}
	case "BinOp":
		return &BinOp{Meta: meta(o), Left: b.field(o, "left"), Op: b.op(o, "op"), Right: b.field(o, "right")}
	case "Call":
		call := &Call{Meta: meta(o), Func: b.field(o, "func"), Args: b.exprs(o, "args")}
		for _, kw := range b.objects(o, "keywords") {
			if kw != nil {
				call.Keywords = append(call.Keywords, &Keyword{Meta: meta(kw), Arg: b.str(kw, "arg"), Value: b.field(kw, "value")})
			}
		}
		return call
	case "Name":
		return &Name{Meta: meta(o), ID: b.str(o, "id")}
	case "Attribute":
		return &Attribute{Meta: meta(o), Value: b.field(o, "value"), Attr: b.str(o, "attr")}
	case "List":
		return &List{Meta: meta(o), Elts: b.exprs(o, "elts")}
	case "Constant":
		c, ok := o.Get("value").(*Const)
		if !ok {
			b.failf(o, "value is not a constant")
			return &Unknown{Meta: meta(o), Type: o.Type}
		}
		typ, ok := constTypes[c.Type]
		if !ok {
			return &Unknown{Meta: meta(o), Type: o.Type}
		}
		value := c.Repr
		switch typ {
		case ConstStr, ConstInt, ConstBool:
			value = c.Value
		}
		return &Constant{Meta: meta(o), Type: typ, Value: value}
	}
	return &Unknown{Meta: meta(o), Type: o.Type}
}
