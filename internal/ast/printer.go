package ast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOptionsArity is returned by Format for call options whose names and
// values do not pair up.
var ErrOptionsArity = errors.New("function call options: names and values differ in length")

// Format renders an expression as Solidity source text.
func Format(expr Expression) (string, error) {
	var b strings.Builder
	if err := formatExpr(&b, expr, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatExpr(b *strings.Builder, expr Expression, depth int) error {
	if expr == nil {
		return nil
	}
	if depth > MaxDepth {
		b.WriteString("...")
		return nil
	}

	next := depth + 1
	switch e := expr.(type) {
	case *Literal:
		formatLiteral(b, e)

	case *Identifier:
		b.WriteString(e.Name)

	case *UnaryOperation:
		if e.Prefix {
			b.WriteString(e.Operator)
			if e.Operator == "delete" {
				b.WriteString(" ")
			}
			return formatExpr(b, e.SubExpression, next)
		}
		if err := formatExpr(b, e.SubExpression, next); err != nil {
			return err
		}
		b.WriteString(e.Operator)

	case *BinaryOperation:
		if err := formatExpr(b, e.LeftExpression, next); err != nil {
			return err
		}
		b.WriteString(fmt.Sprintf(" %s ", e.Operator))
		return formatExpr(b, e.RightExpression, next)

	case *Conditional:
		if err := formatExpr(b, e.Condition, next); err != nil {
			return err
		}
		b.WriteString(" ? ")
		if err := formatExpr(b, e.TrueExpression, next); err != nil {
			return err
		}
		b.WriteString(" : ")
		return formatExpr(b, e.FalseExpression, next)

	case *Assignment:
		if err := formatExpr(b, e.LeftHandSide, next); err != nil {
			return err
		}
		b.WriteString(fmt.Sprintf(" %s ", e.Operator))
		return formatExpr(b, e.RightHandSide, next)

	case *FunctionCall:
		if err := formatExpr(b, e.Expression, next); err != nil {
			return err
		}
		b.WriteString("(")
		if len(e.Names) > 0 && len(e.Names) == len(e.Arguments) {
			b.WriteString("{")
			if err := formatNamed(b, e.Names, e.Arguments, next); err != nil {
				return err
			}
			b.WriteString("}")
		} else if err := formatList(b, e.Arguments, next); err != nil {
			return err
		}
		b.WriteString(")")

	case *FunctionCallOptions:
		if len(e.Names) != len(e.Options) {
			return fmt.Errorf("%w: %d names, %d values", ErrOptionsArity, len(e.Names), len(e.Options))
		}
		if err := formatExpr(b, e.Expression, next); err != nil {
			return err
		}
		b.WriteString("{")
		if err := formatNamed(b, e.Names, e.Options, next); err != nil {
			return err
		}
		b.WriteString("}")

	case *IndexAccess:
		if err := formatExpr(b, e.BaseExpression, next); err != nil {
			return err
		}
		b.WriteString("[")
		if err := formatExpr(b, e.IndexExpression, next); err != nil {
			return err
		}
		b.WriteString("]")

	case *IndexRangeAccess:
		if err := formatExpr(b, e.BaseExpression, next); err != nil {
			return err
		}
		b.WriteString("[")
		if err := formatExpr(b, e.StartExpression, next); err != nil {
			return err
		}
		b.WriteString(":")
		if err := formatExpr(b, e.EndExpression, next); err != nil {
			return err
		}
		b.WriteString("]")

	case *MemberAccess:
		if err := formatExpr(b, e.Expression, next); err != nil {
			return err
		}
		b.WriteString("." + e.MemberName)

	case *ElementaryTypeNameExpression:
		if e.TypeName != nil {
			b.WriteString(e.TypeName.Name)
		}

	case *TupleExpression:
		open, close := "(", ")"
		if e.IsInlineArray {
			open, close = "[", "]"
		}
		b.WriteString(open)
		for i, component := range e.Components {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := formatExpr(b, component, next); err != nil {
				return err
			}
		}
		b.WriteString(close)

	case *NewExpression:
		b.WriteString("new ")
		if e.TypeName != nil {
			b.WriteString(typeNameString(e.TypeName))
		}

	case *UnhandledExpression:
		b.WriteString("<" + e.TypeName + ">")
	}

	return nil
}

func formatLiteral(b *strings.Builder, l *Literal) {
	switch l.Kind {
	case LiteralString:
		b.WriteString(fmt.Sprintf("%q", l.Value))
	case LiteralUnicodeString:
		b.WriteString(fmt.Sprintf("unicode%q", l.Value))
	case LiteralHexString:
		b.WriteString(fmt.Sprintf("hex\"%s\"", l.HexValue))
	default:
		b.WriteString(l.Value)
	}
	if l.Subdenomination != "" {
		b.WriteString(" " + l.Subdenomination)
	}
}

func formatList(b *strings.Builder, exprs []Expression, depth int) error {
	for i, expr := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := formatExpr(b, expr, depth); err != nil {
			return err
		}
	}
	return nil
}

func formatNamed(b *strings.Builder, names []string, values []Expression, depth int) error {
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name + ": ")
		if err := formatExpr(b, values[i], depth); err != nil {
			return err
		}
	}
	return nil
}

func typeNameString(t TypeName) string {
	switch tn := t.(type) {
	case *ElementaryTypeName:
		return tn.Name
	case *UserDefinedTypeName:
		if tn.PathNode != nil {
			return tn.PathNode.Name
		}
		return tn.Name
	case *ArrayTypeName:
		return typeNameString(tn.BaseType) + "[]"
	case *Mapping:
		return fmt.Sprintf("mapping(%s => %s)", typeNameString(tn.KeyType), typeNameString(tn.ValueType))
	}
	if td := t.GetTypeDescriptions(); td.HasTypeString() {
		return td.TypeString
	}
	return t.NodeType().String()
}
