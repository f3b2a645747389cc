package compiler

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"compy/pkg/pyast"
)

// translator walks a syntax tree and emits C++ into an Emitter. Expression
// rules return text; statement rules either return one statement or emit
// their own lines and return "".
type translator struct {
	em *Emitter
}

func newTranslator() *translator {
	return &translator{em: NewEmitter()}
}

// Generate translates a module into a C++ translation unit. The module body
// becomes EntryPoint; every function definition becomes its own function.
func Generate(mod *pyast.Module) (*Unit, error) {
	t := newTranslator()
	if err := t.genModule(mod); err != nil {
		return nil, err
	}
	return t.em.Finish(), nil
}

func (t *translator) genModule(mod *pyast.Module) error {
	scope := t.em.OpenScope(EntryPoint)
	defer scope.Close()
	return t.block(mod.Body)
}

// block translates statements in order into the current scope.
func (t *translator) block(stmts []pyast.Stmt) error {
	for _, s := range stmts {
		text, err := t.genStmt(s)
		if err != nil {
			return err
		}
		t.em.EmitStatement(text)
	}
	return nil
}

// nested emits "header {", the translated body and "}".
func (t *translator) nested(header string, body []pyast.Stmt) error {
	t.em.OpenBlock(header)
	defer t.em.CloseBlock()
	return t.block(body)
}

func (t *translator) genStmt(s pyast.Stmt) (string, error) {
	switch n := s.(type) {

	case *pyast.FunctionDef:
		return "", t.genFunction(n)

	case *pyast.Assign:
		if len(n.Targets) != 1 {
			return "", unsupported(n, "assignment to %d targets", len(n.Targets))
		}
		target, err := t.genExpr(n.Targets[0])
		if err != nil {
			return "", err
		}
		value, err := t.genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", target, value), nil

	case *pyast.AnnAssign:
		target, ok := n.Target.(*pyast.Name)
		if !ok {
			return "", unsupported(n, "annotated target must be a plain name")
		}
		typ, ok := n.Annotation.(*pyast.Name)
		if !ok {
			return "", unsupported(n, "annotation must be a plain type name")
		}
		if n.Value == nil {
			return fmt.Sprintf("%s %s", typ.ID, target.ID), nil
		}
		value, err := t.genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s = %s", typ.ID, target.ID, value), nil

	case *pyast.AugAssign:
		var op string
		switch n.Op {
		case pyast.Add:
			op = "+"
		case pyast.Mult:
			op = "*"
		default:
			return "", unsupported(n, "augmented operator %s", n.Op)
		}
		target, err := t.genExpr(n.Target)
		if err != nil {
			return "", err
		}
		value, err := t.genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s= %s", target, op, value), nil

	case *pyast.While:
		if len(n.Orelse) > 0 {
			return "", unsupported(n, "while loop with an else clause")
		}
		cond, err := t.genExpr(n.Test)
		if err != nil {
			return "", err
		}
		return "", t.nested(fmt.Sprintf("while (%s)", cond), n.Body)

	case *pyast.For:
		if len(n.Orelse) > 0 {
			return "", unsupported(n, "for loop with an else clause")
		}
		target, err := t.genExpr(n.Target)
		if err != nil {
			return "", err
		}
		iter, err := t.genExpr(n.Iter)
		if err != nil {
			return "", err
		}
		return "", t.nested(fmt.Sprintf("for (auto %s : %s)", target, iter), n.Body)

	case *pyast.Return:
		if n.Value == nil {
			return "return", nil
		}
		value, err := t.genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return "return " + value, nil

	case *pyast.ExprStmt:
		return t.genExpr(n.Value)

	case *pyast.Unknown:
		return "", unsupported(n, "")
	}
	return "", unsupported(s, "statement kind has no translation")
}

func (t *translator) genFunction(fn *pyast.FunctionDef) error {
	args := fn.Args
	if args == nil {
		args = &pyast.Arguments{}
	}
	switch {
	case len(fn.Decorators) > 0:
		return unsupported(fn, "decorators")
	case len(args.PosOnly) > 0:
		return unsupported(fn, "positional-only parameters")
	case len(args.KwOnly) > 0 || len(args.KwDefaults) > 0:
		return unsupported(fn, "keyword-only parameters")
	case len(args.Defaults) > 0:
		return unsupported(fn, "default parameter values")
	case args.Vararg != nil:
		return unsupported(fn, "*%s parameter", args.Vararg.Name)
	case args.Kwarg != nil:
		return unsupported(fn, "**%s parameter", args.Kwarg.Name)
	case t.em.Defined(fn.Name) || fn.Name == EntryPoint || fn.Name == hostEntryPoint:
		return unsupported(fn, "redefinition of function %s", fn.Name)
	}

	if fn.Returns != nil {
		ret, ok := fn.Returns.(*pyast.Name)
		if !ok {
			return unsupported(fn.Returns, "return annotation of %s must be a plain type name", fn.Name)
		}
		t.em.DeclareReturnType(fn.Name, ret.ID)
	}

	params := make([]string, len(args.Args))
	for i, a := range args.Args {
		params[i] = a.Name
	}
	t.em.DeclareParameters(fn.Name, params)

	scope := t.em.OpenScope(fn.Name)
	defer scope.Close()
	return t.block(fn.Body)
}

func (t *translator) genExpr(e pyast.Expr) (string, error) {
	switch n := e.(type) {

	case *pyast.Subscript:
		value, err := t.genExpr(n.Value)
		if err != nil {
			return "", err
		}
		index, err := t.genExpr(n.Slice)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", value, index), nil

	case *pyast.IfExp:
		cond, err := t.genExpr(n.Test)
		if err != nil {
			return "", err
		}
		then, err := t.genExpr(n.Body)
		if err != nil {
			return "", err
		}
		otherwise, err := t.genExpr(n.Orelse)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s) ? (%s) : (%s)", cond, then, otherwise), nil

	case *pyast.Compare:
		if len(n.Ops) != 1 || len(n.Comparators) != 1 {
			return "", unsupported(n, "chained comparison with %d operators", len(n.Ops))
		}
		var op string
		switch n.Ops[0] {
		case pyast.Lt:
			op = "<"
		case pyast.LtE:
			op = "<="
		default:
			return "", unsupported(n, "comparison operator %s", n.Ops[0])
		}
		return t.binary(n.Left, op, n.Comparators[0])

	case *pyast.BinOp:
		var op string
		switch n.Op {
		case pyast.Add:
			op = "+"
		case pyast.Sub:
			op = "-"
		case pyast.Mult:
			op = "*"
		default:
			return "", unsupported(n, "binary operator %s", n.Op)
		}
		return t.binary(n.Left, op, n.Right)

	case *pyast.Call:
		return t.genCall(n)

	case *pyast.Name:
		return n.ID, nil

	case *pyast.Attribute:
		value, err := t.genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s).%s", value, n.Attr), nil

	case *pyast.List:
		elts, err := t.genExprs(n.Elts)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", listInit, strings.Join(elts, ", ")), nil

	case *pyast.Constant:
		return genConstant(n)

	case *pyast.Unknown:
		return "", unsupported(n, "")
	}
	if e == nil {
		return "", errors.New("missing expression")
	}
	return "", unsupported(e, "expression kind has no translation")
}

// binary parenthesises both operands; precedence is never inferred.
func (t *translator) binary(left pyast.Expr, op string, right pyast.Expr) (string, error) {
	lhs, err := t.genExpr(left)
	if err != nil {
		return "", err
	}
	rhs, err := t.genExpr(right)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s) %s (%s)", lhs, op, rhs), nil
}

func (t *translator) genExprs(exprs []pyast.Expr) ([]string, error) {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		s, err := t.genExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// genCall passes keyword arguments as a leading Keyword_Arguments value
// built with one append per keyword, in source order.
func (t *translator) genCall(call *pyast.Call) (string, error) {
	fn, err := t.genExpr(call.Func)
	if err != nil {
		return "", err
	}
	args, err := t.genExprs(call.Args)
	if err != nil {
		return "", err
	}

	if len(call.Keywords) > 0 {
		var kw strings.Builder
		kw.WriteString(kwargsBuilder)
		for _, k := range call.Keywords {
			if k.Arg == "" {
				return "", unsupported(call, "keyword argument unpacking")
			}
			value, err := t.genExpr(k.Value)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&kw, ".append(%q, %s)", k.Arg, value)
		}
		args = append([]string{kw.String()}, args...)
	}

	return fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", ")), nil
}

func genConstant(c *pyast.Constant) (string, error) {
	switch c.Type {
	case pyast.ConstNone:
		return noneLiteral, nil
	case pyast.ConstBool:
		return cppBool(c.Value), nil
	case pyast.ConstStr:
		return cppString(c.Value), nil
	case pyast.ConstInt:
		lit, ok := cppInt(c.Value)
		if !ok {
			return "", unsupported(c, "integer %s does not fit in 64 bits", c.Value)
		}
		return lit, nil
	case pyast.ConstSurrogateStr:
		return "", unsupported(c, "string %s contains a lone surrogate", c.Value)
	}
	return "", unsupported(c, "%s constant", c.Type)
}
