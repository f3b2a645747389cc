// Package pyast models the Python syntax tree that compy translates.
//
// Trees are produced by the host interpreter's own parser (see Parse) and
// decoded into a closed set of node types. Node kinds outside the supported
// subset decode to *Unknown so that the translator can reject them with the
// original structure intact.
package pyast

import (
	"fmt"
	"strings"
)

// Pos is the location of a node in its source file. Line is 1-based, Col is
// the 0-based UTF-8 byte offset reported by the host parser.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is implemented by every decoded tree node.
type Node interface {
	Kind() string
	Position() Pos
	String() string
	meta() *Meta
}

// Meta carries the bookkeeping shared by all nodes. Raw is the decoded host
// object the node came from; it is nil for hand-built trees.
type Meta struct {
	Pos Pos
	Raw *Object
}

func (m *Meta) Position() Pos { return m.Pos }
func (m *Meta) meta() *Meta   { return m }

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Operator is the class name of a host operator node, e.g. "Add" or "LtE".
type Operator string

const (
	Add      Operator = "Add"
	Sub      Operator = "Sub"
	Mult     Operator = "Mult"
	Div      Operator = "Div"
	FloorDiv Operator = "FloorDiv"
	Mod      Operator = "Mod"
	Pow      Operator = "Pow"
	Eq       Operator = "Eq"
	NotEq    Operator = "NotEq"
	Lt       Operator = "Lt"
	LtE      Operator = "LtE"
	Gt       Operator = "Gt"
	GtE      Operator = "GtE"
)

//  Module level

// Module is the root of every parsed file.
type Module struct {
	Meta
	Body []Stmt
}

func (*Module) Kind() string { return "Module" }
func (m *Module) String() string {
	return fmt.Sprintf("Module(len=%d)", len(m.Body))
}

//  Statement nodes

// FunctionDef represents
//
//	def name(args) -> Returns:
//	    Body
type FunctionDef struct {
	Meta
	Name       string
	Args       *Arguments
	Body       []Stmt
	Decorators []Expr
	Returns    Expr // may be nil
}

func (*FunctionDef) Kind() string { return "FunctionDef" }
func (*FunctionDef) stmtNode()    {}
func (f *FunctionDef) String() string {
	return fmt.Sprintf("FunctionDef(%s, args=%s, returns=%s, body=%d)", f.Name, f.Args, f.Returns, len(f.Body))
}

// Arguments is the full parameter list of a FunctionDef.
type Arguments struct {
	Meta
	PosOnly    []*Arg
	Args       []*Arg
	Vararg     *Arg
	KwOnly     []*Arg
	KwDefaults []Expr // aligned with KwOnly, nil entries have no default
	Kwarg      *Arg
	Defaults   []Expr
}

func (*Arguments) Kind() string { return "arguments" }
func (a *Arguments) String() string {
	if a == nil {
		return "()"
	}
	names := make([]string, len(a.Args))
	for i, arg := range a.Args {
		names[i] = arg.Name
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Arg is a single parameter.
type Arg struct {
	Meta
	Name       string
	Annotation Expr // may be nil
}

func (*Arg) Kind() string     { return "arg" }
func (a *Arg) String() string { return a.Name }

// Assign represents  Targets[0] = ... = Value
type Assign struct {
	Meta
	Targets []Expr
	Value   Expr
}

func (*Assign) Kind() string { return "Assign" }
func (*Assign) stmtNode()    {}
func (a *Assign) String() string {
	return fmt.Sprintf("Assign(%v = %s)", a.Targets, a.Value)
}

// AnnAssign represents  Target : Annotation = Value
//
//	result : int = 1
//	^^^^^^   ^^^   ^
//	Target   |     Value (may be nil)
//	         Annotation
type AnnAssign struct {
	Meta
	Target     Expr
	Annotation Expr
	Value      Expr
	Simple     bool
}

func (*AnnAssign) Kind() string { return "AnnAssign" }
func (*AnnAssign) stmtNode()    {}
func (a *AnnAssign) String() string {
	return fmt.Sprintf("AnnAssign(%s : %s = %s)", a.Target, a.Annotation, a.Value)
}

// AugAssign represents  Target Op= Value
type AugAssign struct {
	Meta
	Target Expr
	Op     Operator
	Value  Expr
}

func (*AugAssign) Kind() string { return "AugAssign" }
func (*AugAssign) stmtNode()    {}
func (a *AugAssign) String() string {
	return fmt.Sprintf("AugAssign(%s %s= %s)", a.Target, a.Op, a.Value)
}

// While represents  while Test: Body else: Orelse
type While struct {
	Meta
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*While) Kind() string { return "While" }
func (*While) stmtNode()    {}
func (w *While) String() string {
	return fmt.Sprintf("While(%s, body=%d)", w.Test, len(w.Body))
}

// For represents  for Target in Iter: Body else: Orelse
type For struct {
	Meta
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*For) Kind() string { return "For" }
func (*For) stmtNode()    {}
func (f *For) String() string {
	return fmt.Sprintf("For(%s in %s, body=%d)", f.Target, f.Iter, len(f.Body))
}

// Return represents  return Value
type Return struct {
	Meta
	Value Expr // may be nil
}

func (*Return) Kind() string { return "Return" }
func (*Return) stmtNode()    {}
func (r *Return) String() string {
	return fmt.Sprintf("Return(%s)", r.Value)
}

// ExprStmt is an expression evaluated for its side effects (e.g. a call).
type ExprStmt struct {
	Meta
	Value Expr
}

func (*ExprStmt) Kind() string { return "Expr" }
func (*ExprStmt) stmtNode()    {}
func (e *ExprStmt) String() string {
	return fmt.Sprintf("Expr(%s)", e.Value)
}

//  Expression nodes

// Subscript represents Value[Slice]
type Subscript struct {
	Meta
	Value Expr
	Slice Expr
}

func (*Subscript) Kind() string { return "Subscript" }
func (*Subscript) exprNode()    {}
func (s *Subscript) String() string {
	return fmt.Sprintf("(%s[%s])", s.Value, s.Slice)
}

// IfExp represents  Body if Test else Orelse
type IfExp struct {
	Meta
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (*IfExp) Kind() string { return "IfExp" }
func (*IfExp) exprNode()    {}
func (i *IfExp) String() string {
	return fmt.Sprintf("(%s if %s else %s)", i.Body, i.Test, i.Orelse)
}

// Compare represents Left Ops[0] Comparators[0] Ops[1] Comparators[1] ...
type Compare struct {
	Meta
	Left        Expr
	Ops         []Operator
	Comparators []Expr
}

func (*Compare) Kind() string { return "Compare" }
func (*Compare) exprNode()    {}
func (c *Compare) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(c.Left.String())
	for i, op := range c.Ops {
		if i < len(c.Comparators) {
			fmt.Fprintf(&sb, " %s %s", op, c.Comparators[i])
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// BinOp represents Left Op Right
//
//	n - 1
//	^ ^ ^
//	| | Right
//	| Op
//	Left
type BinOp struct {
	Meta
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinOp) Kind() string { return "BinOp" }
func (*BinOp) exprNode()    {}
func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Call represents Func(Args..., Keywords...)
type Call struct {
	Meta
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (*Call) Kind() string { return "Call" }
func (*Call) exprNode()    {}
func (c *Call) String() string {
	return fmt.Sprintf("Call(%s, args=%v, keywords=%v)", c.Func, c.Args, c.Keywords)
}

// Keyword is a  name=Value  call argument. Arg is empty for **mapping.
type Keyword struct {
	Meta
	Arg   string
	Value Expr
}

func (*Keyword) Kind() string { return "keyword" }
func (k *Keyword) String() string {
	if k.Arg == "" {
		return fmt.Sprintf("**%s", k.Value)
	}
	return fmt.Sprintf("%s=%s", k.Arg, k.Value)
}

// Name is a read or write of an identifier.
type Name struct {
	Meta
	ID string
}

func (*Name) Kind() string     { return "Name" }
func (*Name) exprNode()        {}
func (n *Name) String() string { return n.ID }

// Attribute represents Value.Attr
type Attribute struct {
	Meta
	Value Expr
	Attr  string
}

func (*Attribute) Kind() string { return "Attribute" }
func (*Attribute) exprNode()    {}
func (a *Attribute) String() string {
	return fmt.Sprintf("(%s.%s)", a.Value, a.Attr)
}

// List represents [Elts...]
type List struct {
	Meta
	Elts []Expr
}

func (*List) Kind() string { return "List" }
func (*List) exprNode()    {}
func (l *List) String() string {
	return fmt.Sprintf("List(len=%d, %v)", len(l.Elts), l.Elts)
}

// ConstType is the host type of a Constant's value.
type ConstType int

const (
	ConstNone ConstType = iota
	ConstBool
	ConstInt
	ConstStr
	ConstFloat
	ConstBytes
	ConstComplex
	ConstEllipsis
	// ConstSurrogateStr is a str holding a lone surrogate, which has no
	// UTF-8 encoding. Value is its ASCII-escaped repr.
	ConstSurrogateStr
)

var constTypeNames = [...]string{
	ConstNone:         "NoneType",
	ConstBool:         "bool",
	ConstInt:          "int",
	ConstStr:          "str",
	ConstFloat:        "float",
	ConstBytes:        "bytes",
	ConstComplex:      "complex",
	ConstEllipsis:     "ellipsis",
	ConstSurrogateStr: "str-surrogate",
}

func (t ConstType) String() string {
	if int(t) < len(constTypeNames) {
		return constTypeNames[t]
	}
	return fmt.Sprintf("ConstType(%d)", int(t))
}

// Constant is a literal value.
//
// Value holds the text of the literal: the string itself for ConstStr,
// decimal digits for ConstInt, "True"/"False" for ConstBool and the host
// repr for everything else.
type Constant struct {
	Meta
	Type  ConstType
	Value string
}

func (*Constant) Kind() string { return "Constant" }
func (*Constant) exprNode()    {}
func (c *Constant) String() string {
	if c.Type == ConstStr {
		return fmt.Sprintf("%q", c.Value)
	}
	if c.Type == ConstNone {
		return "None"
	}
	return c.Value
}

// Unknown is any host node kind outside the supported subset. It satisfies
// both Stmt and Expr so it can stand in wherever the host tree put it.
type Unknown struct {
	Meta
	Type string
}

func (u *Unknown) Kind() string   { return u.Type }
func (*Unknown) stmtNode()        {}
func (*Unknown) exprNode()        {}
func (u *Unknown) String() string { return fmt.Sprintf("Unknown(%s)", u.Type) }
