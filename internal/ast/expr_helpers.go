package ast

// ReferencedDeclarations collects the declaration IDs an expression reads or
// writes, in source order. Duplicates are kept.
func ReferencedDeclarations(expr Expression) []NodeID {
	var ids []NodeID
	collectReferences(expr, &ids, 0)
	return ids
}

func collectReferences(expr Expression, ids *[]NodeID, depth int) {
	if expr == nil || depth > MaxDepth {
		return
	}

	switch e := expr.(type) {
	case *Identifier:
		if e.ReferencedDeclaration != nil {
			*ids = append(*ids, *e.ReferencedDeclaration)
		}
	case *Assignment:
		collectReferences(e.LeftHandSide, ids, depth+1)
		collectReferences(e.RightHandSide, ids, depth+1)
	case *IndexAccess:
		collectReferences(e.BaseExpression, ids, depth+1)
	case *IndexRangeAccess:
		collectReferences(e.BaseExpression, ids, depth+1)
	case *MemberAccess:
		collectReferences(e.Expression, ids, depth+1)
		if e.ReferencedDeclaration != nil {
			*ids = append(*ids, *e.ReferencedDeclaration)
		}
	case *TupleExpression:
		for _, component := range e.Components {
			collectReferences(component, ids, depth+1)
		}
	case *FunctionCall:
		collectReferences(e.Expression, ids, depth+1)
		for _, arg := range e.Arguments {
			collectReferences(arg, ids, depth+1)
		}
	}
}

// ContainsOperation reports whether operator appears as a unary or binary
// operator anywhere in expr.
func ContainsOperation(expr Expression, operator string) bool {
	return containsOperation(expr, operator, 0)
}

func containsOperation(expr Expression, op string, depth int) bool {
	if expr == nil || depth > MaxDepth {
		return false
	}

	next := depth + 1
	switch e := expr.(type) {
	case *UnaryOperation:
		return e.Operator == op || containsOperation(e.SubExpression, op, next)
	case *BinaryOperation:
		return e.Operator == op ||
			containsOperation(e.LeftExpression, op, next) ||
			containsOperation(e.RightExpression, op, next)
	case *Conditional:
		return containsOperation(e.Condition, op, next) ||
			containsOperation(e.TrueExpression, op, next) ||
			containsOperation(e.FalseExpression, op, next)
	case *Assignment:
		return containsOperation(e.LeftHandSide, op, next) ||
			containsOperation(e.RightHandSide, op, next)
	case *FunctionCall:
		if containsOperation(e.Expression, op, next) {
			return true
		}
		for _, arg := range e.Arguments {
			if containsOperation(arg, op, next) {
				return true
			}
		}
	case *FunctionCallOptions:
		if containsOperation(e.Expression, op, next) {
			return true
		}
		for _, option := range e.Options {
			if containsOperation(option, op, next) {
				return true
			}
		}
	case *IndexAccess:
		return containsOperation(e.BaseExpression, op, next) ||
			containsOperation(e.IndexExpression, op, next)
	case *IndexRangeAccess:
		return containsOperation(e.BaseExpression, op, next) ||
			containsOperation(e.StartExpression, op, next) ||
			containsOperation(e.EndExpression, op, next)
	case *MemberAccess:
		return containsOperation(e.Expression, op, next)
	case *TupleExpression:
		for _, component := range e.Components {
			if containsOperation(component, op, next) {
				return true
			}
		}
	}
	return false
}

// RootExpression follows index, member, call and call-option chains down to
// the innermost receiver, e.g. `a` for `a.b[c].d(e)`.
func RootExpression(expr Expression) Expression {
	for depth := 0; expr != nil && depth <= MaxDepth; depth++ {
		var inner Expression
		switch e := expr.(type) {
		case *IndexAccess:
			inner = e.BaseExpression
		case *IndexRangeAccess:
			inner = e.BaseExpression
		case *MemberAccess:
			inner = e.Expression
		case *FunctionCall:
			inner = e.Expression
		case *FunctionCallOptions:
			inner = e.Expression
		default:
			return expr
		}
		if inner == nil {
			return expr
		}
		expr = inner
	}
	return expr
}

// ReferencedDeclarationOf returns the declaration an identifier-like
// expression names directly.
func ReferencedDeclarationOf(expr Expression) (NodeID, bool) {
	switch e := expr.(type) {
	case *Identifier:
		if e.ReferencedDeclaration != nil {
			return *e.ReferencedDeclaration, true
		}
	case *MemberAccess:
		if e.ReferencedDeclaration != nil {
			return *e.ReferencedDeclaration, true
		}
	}
	return 0, false
}
