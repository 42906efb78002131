package filter

import (
	"encoding/json"
	"fmt"
)

// exprJSON is the wire shape of an expression node. The op name selects
// which payload fields are present, mirroring the in-memory union.
type exprJSON struct {
	Op    string      `json:"op"`
	Str   *string     `json:"str,omitempty"`
	Int   *int64      `json:"int,omitempty"`
	Float *float64    `json:"float,omitempty"`
	Bool  *bool       `json:"bool,omitempty"`
	Elems []*exprJSON `json:"elems,omitempty"`
	Left  *exprJSON   `json:"left,omitempty"`
	Right *exprJSON   `json:"right,omitempty"`
	High  *exprJSON   `json:"high,omitempty"`
}

// MarshalJSON encodes the tree as a tagged union keyed by the stable
// op names. Encoding then decoding yields a tree Equal to the original.
func (e *Expr) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toWire())
}

func (e *Expr) toWire() *exprJSON {
	if e == nil {
		return nil
	}
	w := &exprJSON{Op: e.Op.String()}
	switch e.Op {
	case OpLiteralString, OpField:
		s := e.Str
		w.Str = &s
	case OpLiteralInt:
		i := e.Int
		w.Int = &i
	case OpLiteralFloat:
		f := e.Float
		w.Float = &f
	case OpLiteralBool:
		b := e.Bool
		w.Bool = &b
	case OpLiteralArray:
		w.Elems = make([]*exprJSON, len(e.Elems))
		for i, elem := range e.Elems {
			w.Elems[i] = elem.toWire()
		}
	}
	w.Left = e.Left.toWire()
	w.Right = e.Right.toWire()
	w.High = e.High.toWire()
	return w
}

// UnmarshalJSON decodes the tagged union form produced by MarshalJSON.
// Unknown op names and missing payloads are errors.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var w exprJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.toExpr()
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

func (w *exprJSON) toExpr() (*Expr, error) {
	if w == nil {
		return nil, nil
	}
	op, ok := opsByName[w.Op]
	if !ok {
		return nil, fmt.Errorf("unknown filter op %q", w.Op)
	}

	e := &Expr{Op: op}
	switch op {
	case OpLiteralString, OpField:
		if w.Str == nil {
			return nil, fmt.Errorf("filter op %q requires a string payload", w.Op)
		}
		e.Str = *w.Str
	case OpLiteralInt:
		if w.Int == nil {
			return nil, fmt.Errorf("filter op %q requires an integer payload", w.Op)
		}
		e.Int = *w.Int
	case OpLiteralFloat:
		if w.Float == nil {
			return nil, fmt.Errorf("filter op %q requires a float payload", w.Op)
		}
		e.Float = *w.Float
	case OpLiteralBool:
		if w.Bool == nil {
			return nil, fmt.Errorf("filter op %q requires a boolean payload", w.Op)
		}
		e.Bool = *w.Bool
	case OpLiteralArray:
		if len(w.Elems) == 0 {
			return nil, fmt.Errorf("filter op %q requires at least one element", w.Op)
		}
		e.Elems = make([]*Expr, len(w.Elems))
		for i, elem := range w.Elems {
			decoded, err := elem.toExpr()
			if err != nil {
				return nil, err
			}
			e.Elems[i] = decoded
		}
	}

	var err error
	if e.Left, err = w.Left.toExpr(); err != nil {
		return nil, err
	}
	if e.Right, err = w.Right.toExpr(); err != nil {
		return nil, err
	}
	if e.High, err = w.High.toExpr(); err != nil {
		return nil, err
	}
	return e, nil
}
