package pyast

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Object is a host tree node as serialised by the parser helper, before it
// is mapped onto a typed node. Fields keep the host's declaration order.
type Object struct {
	Type   string
	Pos    Pos
	Fields []Field
}

// Field is one named child of an Object. Value is one of *Object, *Const,
// []any, string, json.Number, bool or nil.
type Field struct {
	Name  string
	Value any
}

// Const is the serialised value of a Constant node.
type Const struct {
	Type  string // host type name, e.g. "int" or "NoneType"
	Value string
	Repr  string
}

// Get returns the named field's value, or nil.
func (o *Object) Get(name string) any {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// toRaw converts a generic JSON value produced by the helper into the raw
// representation.
func toRaw(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		if c, ok := v["_const"]; ok {
			return toConst(c, v)
		}
		return toObject(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			raw, err := toRaw(item)
			if err != nil {
				return nil, err
			}
			out[i] = raw
		}
		return out, nil
	case nil, string, bool, json.Number:
		return v, nil
	}
	return nil, errors.Errorf("unexpected %T in syntax tree", v)
}

func toConst(typ any, v map[string]any) (*Const, error) {
	c := &Const{}
	var ok bool
	if c.Type, ok = typ.(string); !ok {
		return nil, errors.Errorf("constant type is %T, not a string", typ)
	}
	c.Value, _ = v["value"].(string)
	c.Repr, _ = v["repr"].(string)
	return c, nil
}

func toObject(v map[string]any) (*Object, error) {
	typ, ok := v["_type"].(string)
	if !ok {
		return nil, errors.New("syntax tree object without _type")
	}
	o := &Object{Type: typ}

	if n, ok := v["_lineno"].(json.Number); ok {
		line, err := n.Int64()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad line number", typ)
		}
		o.Pos.Line = int(line)
	}
	if n, ok := v["_col_offset"].(json.Number); ok {
		col, err := n.Int64()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad column", typ)
		}
		o.Pos.Col = int(col)
	}

	names, _ := v["_fields"].([]any)
	o.Fields = make([]Field, 0, len(names))
	for _, n := range names {
		name, ok := n.(string)
		if !ok {
			return nil, errors.Errorf("%s: field name is %T", typ, n)
		}
		raw, err := toRaw(v[name])
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", typ, name)
		}
		o.Fields = append(o.Fields, Field{Name: name, Value: raw})
	}
	return o, nil
}
