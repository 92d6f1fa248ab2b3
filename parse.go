package chipsim

import (
	"github.com/pkg/errors"
)

// Parse parses a single chip unit and drains ts. The first token that does
// not fit the grammar aborts parsing with a *SyntaxError. Tokens left over
// after the closing brace of the chip are reported as a syntax error as well.
//
// The grammar is:
//
//	chip_unit   := 'chip' chip_def
//	chip_def    := IDENT '(' wire_list ')' '->' wire_list '{' body '}'
//	wire_list   := wire (',' wire)*
//	wire        := IDENT ':' INTEGER
//	body        := (cross_decl | instruction)*
//	cross_decl  := 'cross' wire ';'
//	instruction := IDENT '(' name_list ')' '->' name_list ';'
//	name_list   := IDENT (',' IDENT)*
//
func Parse(ts *TokenStack) (*Chip, error) {
	c, err := parseUnit(ts)
	if err != nil {
		return nil, err
	}
	if err = expect(ts, EOF); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseAll parses consecutive chip units until ts is empty.
//
func ParseAll(ts *TokenStack) ([]*Chip, error) {
	var chips []*Chip
	for ts.Len() > 0 {
		c, err := parseUnit(ts)
		if err != nil {
			return nil, err
		}
		chips = append(chips, c)
	}
	return chips, nil
}

func parseUnit(ts *TokenStack) (*Chip, error) {
	pos := ts.Peek().Pos
	if err := expect(ts, ChipKeyword); err != nil {
		return nil, err
	}
	c, err := parseChipDef(ts)
	if err != nil {
		return nil, err
	}
	c.Pos = pos
	parseTracer().Debugf("parsed chip %s: %d inputs, %d outputs, %d internal wires, %d instructions",
		c.Name, len(c.Inputs), len(c.Outputs), len(c.Internal), len(c.Instructions))
	return c, nil
}

func expect(ts *TokenStack, k Kind) error {
	_, _, err := Expect(ts.Pop(), k)
	return err
}

func ident(ts *TokenStack) (string, error) {
	name, _, err := Expect(ts.Pop(), Ident)
	return name, err
}

// accept consumes the next token if it is of kind k.
//
func accept(ts *TokenStack, k Kind) bool {
	if ts.Peek().Kind == k {
		ts.Pop()
		return true
	}
	return false
}

func parseChipDef(ts *TokenStack) (*Chip, error) {
	name, err := ident(ts)
	if err != nil {
		return nil, err
	}
	if err = expect(ts, LParen); err != nil {
		return nil, err
	}
	c := &Chip{Name: name}
	if c.Inputs, err = parseWireList(ts, RParen); err != nil {
		return nil, err
	}
	if err = expect(ts, Arrow); err != nil {
		return nil, err
	}
	if c.Outputs, err = parseWireList(ts, LBrace); err != nil {
		return nil, err
	}
	if err = parseBody(ts, c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseWire(ts *TokenStack) (Wire, error) {
	pos := ts.Peek().Pos
	name, err := ident(ts)
	if err != nil {
		return Wire{}, err
	}
	if err = expect(ts, Colon); err != nil {
		return Wire{}, err
	}
	_, width, err := Expect(ts.Pop(), Int)
	if err != nil {
		return Wire{}, err
	}
	return Wire{Name: name, Width: width, Pos: pos}, nil
}

// parseWireList parses a comma separated list of wires up to and including
// the terminator.
//
func parseWireList(ts *TokenStack, terminator Kind) ([]Wire, error) {
	var ws []Wire
	for {
		w, err := parseWire(ts)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
		if done, err := listNext(ts, terminator); err != nil || done {
			return ws, err
		}
	}
}

// parseNameList is the bare identifier version of parseWireList.
//
func parseNameList(ts *TokenStack, terminator Kind) ([]string, error) {
	var names []string
	for {
		name, err := ident(ts)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if done, err := listNext(ts, terminator); err != nil || done {
			return names, err
		}
	}
}

// listNext consumes either a comma (more items follow) or the list
// terminator (done). Anything else is reported as a missing terminator.
//
func listNext(ts *TokenStack, terminator Kind) (done bool, err error) {
	if accept(ts, Comma) {
		return false, nil
	}
	if err = expect(ts, terminator); err != nil {
		return false, err
	}
	return true, nil
}

func parseBody(ts *TokenStack, c *Chip) error {
	for {
		t := ts.Peek()
		switch t.Kind {
		case RBrace:
			ts.Pop()
			return nil
		case CrossKeyword:
			ts.Pop()
			w, err := parseWire(ts)
			if err != nil {
				return err
			}
			if err = expect(ts, Semicolon); err != nil {
				return err
			}
			c.Internal = append(c.Internal, w)
		case Ident:
			inst, err := parseInstruction(ts)
			if err != nil {
				return err
			}
			c.Instructions = append(c.Instructions, inst)
		default:
			return errors.WithStack(&SyntaxError{Pos: t.Pos, Expected: Ident, Actual: t})
		}
	}
}

func parseInstruction(ts *TokenStack) (Instruction, error) {
	pos := ts.Peek().Pos
	callee, err := ident(ts)
	if err != nil {
		return Instruction{}, err
	}
	if err = expect(ts, LParen); err != nil {
		return Instruction{}, err
	}
	inst := Instruction{Callee: callee, Pos: pos}
	if inst.Inputs, err = parseNameList(ts, RParen); err != nil {
		return Instruction{}, err
	}
	if err = expect(ts, Arrow); err != nil {
		return Instruction{}, err
	}
	if inst.Outputs, err = parseNameList(ts, Semicolon); err != nil {
		return Instruction{}, err
	}
	return inst, nil
}
