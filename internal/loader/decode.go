package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
)

// fields is one JSON object of the compact AST, decoded lazily.
type fields map[string]json.RawMessage

func parseFields(raw json.RawMessage) (fields, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, false
	}
	return f, true
}

// get decodes the value at key into v. Missing keys and values of the wrong
// shape leave v untouched.
func (f fields) get(key string, v any) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (f fields) str(key string) string {
	var s string
	f.get(key, &s)
	return s
}

func (f fields) boolean(key string) bool {
	var b bool
	f.get(key, &b)
	return b
}

func (f fields) id(key string) ast.NodeID {
	var id ast.NodeID
	f.get(key, &id)
	return id
}

func (f fields) optID(key string) *ast.NodeID {
	var id *ast.NodeID
	f.get(key, &id)
	return id
}

func (f fields) ids(key string) []ast.NodeID {
	var ids []ast.NodeID
	f.get(key, &ids)
	return ids
}

func (f fields) strs(key string) []string {
	var s []string
	f.get(key, &s)
	return s
}

func (f fields) list(key string) []json.RawMessage {
	var l []json.RawMessage
	f.get(key, &l)
	return l
}

func (f fields) info() ast.NodeInfo {
	return ast.NodeInfo{ID: f.id("id"), Src: f.str("src")}
}

func (f fields) nodeType() string {
	return f.str("nodeType")
}

type typeDescriptionsJSON struct {
	TypeString     string `json:"typeString"`
	TypeIdentifier string `json:"typeIdentifier"`
}

func (t typeDescriptionsJSON) convert() ast.TypeDescriptions {
	return ast.TypeDescriptions{TypeString: t.TypeString, TypeIdentifier: t.TypeIdentifier}
}

func (f fields) typeDescriptions(key string) ast.TypeDescriptions {
	var td typeDescriptionsJSON
	f.get(key, &td)
	return td.convert()
}

func (f fields) exprInfo() ast.ExprInfo {
	info := ast.ExprInfo{
		TypeDescriptions: f.typeDescriptions("typeDescriptions"),
		IsConstant:       f.boolean("isConstant"),
		IsLValue:         f.boolean("isLValue"),
		IsPure:           f.boolean("isPure"),
		LValueRequested:  f.boolean("lValueRequested"),
	}
	var args []typeDescriptionsJSON
	f.get("argumentTypes", &args)
	for _, arg := range args {
		info.ArgumentTypes = append(info.ArgumentTypes, arg.convert())
	}
	return info
}

// decoder turns compact-JSON AST objects into ast nodes. Unknown node kinds
// are dropped with a warning, except in expression position where they
// become UnhandledExpression.
type decoder struct {
	file    string
	dropped int
}

func (d *decoder) drop(f fields, where string) {
	d.dropped++
	log.Warningf("%s: dropping unsupported %s %q at %s", d.file, where, f.nodeType(), f.str("src"))
}

func (d *decoder) sourceUnit(raw json.RawMessage) (*ast.SourceUnit, error) {
	f, ok := parseFields(raw)
	if !ok {
		return nil, fmt.Errorf("%w: AST root is not an object", ErrUnknownFormat)
	}
	if t := f.nodeType(); t != "SourceUnit" {
		return nil, fmt.Errorf("%w: AST root is %q, not a SourceUnit", ErrUnknownFormat, t)
	}

	unit := &ast.SourceUnit{
		NodeInfo:     f.info(),
		AbsolutePath: f.str("absolutePath"),
		License:      f.str("license"),
	}
	f.get("exportedSymbols", &unit.ExportedSymbols)
	unit.Nodes = d.declarations(f.list("nodes"))
	return unit, nil
}

func (d *decoder) node(raw json.RawMessage) ast.Node {
	f, ok := parseFields(raw)
	if !ok {
		return nil
	}
	return d.decode(f)
}

func decodeAs[T ast.Node](d *decoder, raw json.RawMessage) T {
	t, _ := d.node(raw).(T)
	return t
}

// collect decodes every element of raws as a T, skipping the ones that are
// absent or of another kind.
func collect[T ast.Node](d *decoder, raws []json.RawMessage) []T {
	var out []T
	for _, raw := range raws {
		if t, ok := d.node(raw).(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func (d *decoder) declarations(raws []json.RawMessage) []ast.Node {
	var out []ast.Node
	for _, raw := range raws {
		f, ok := parseFields(raw)
		if !ok {
			continue
		}
		n := d.decode(f)
		if n == nil {
			d.drop(f, "declaration")
			continue
		}
		out = append(out, n)
	}
	return out
}

func (d *decoder) expr(raw json.RawMessage) ast.Expression {
	f, ok := parseFields(raw)
	if !ok {
		return nil
	}
	if e, ok := d.decode(f).(ast.Expression); ok {
		return e
	}
	log.Debugf("%s: unhandled expression %q at %s", d.file, f.nodeType(), f.str("src"))
	return &ast.UnhandledExpression{
		ExprInfo: f.exprInfo(),
		ID:       f.optID("id"),
		Src:      f.str("src"),
		TypeName: f.nodeType(),
	}
}

// exprs keeps absent entries as nil, for sparse tuples.
func (d *decoder) exprs(raws []json.RawMessage) []ast.Expression {
	if raws == nil {
		return nil
	}
	out := make([]ast.Expression, len(raws))
	for i, raw := range raws {
		out[i] = d.expr(raw)
	}
	return out
}

func (d *decoder) stmt(raw json.RawMessage) ast.Statement {
	f, ok := parseFields(raw)
	if !ok {
		return nil
	}
	if s, ok := d.decode(f).(ast.Statement); ok {
		return s
	}
	d.drop(f, "statement")
	return nil
}

func (d *decoder) stmts(raws []json.RawMessage) []ast.Statement {
	var out []ast.Statement
	for _, raw := range raws {
		if s := d.stmt(raw); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) typeName(raw json.RawMessage) ast.TypeName {
	f, ok := parseFields(raw)
	if !ok {
		return nil
	}
	if t, ok := d.decode(f).(ast.TypeName); ok {
		return t
	}
	d.drop(f, "type name")
	return nil
}

// path decodes an IdentifierPath. Older compilers emit an Identifier or a
// UserDefinedTypeName in the same position.
func (d *decoder) path(raw json.RawMessage) *ast.IdentifierPath {
	f, ok := parseFields(raw)
	if !ok {
		return nil
	}
	switch n := d.decode(f).(type) {
	case *ast.IdentifierPath:
		return n
	case *ast.Identifier:
		p := &ast.IdentifierPath{NodeInfo: n.NodeInfo, Name: n.Name}
		if n.ReferencedDeclaration != nil {
			p.ReferencedDeclaration = *n.ReferencedDeclaration
		}
		return p
	case *ast.UserDefinedTypeName:
		if n.PathNode != nil {
			return n.PathNode
		}
		return &ast.IdentifierPath{NodeInfo: n.NodeInfo, Name: n.Name, ReferencedDeclaration: n.ReferencedDeclaration}
	}
	return nil
}

func (d *decoder) paths(raws []json.RawMessage) []*ast.IdentifierPath {
	var out []*ast.IdentifierPath
	for _, raw := range raws {
		if p := d.path(raw); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (d *decoder) params(f fields, key string) *ast.ParameterList {
	return decodeAs[*ast.ParameterList](d, f[key])
}

// docs is nil for the plain string documentation of old compilers.
func (d *decoder) docs(f fields) *ast.StructuredDocumentation {
	return decodeAs[*ast.StructuredDocumentation](d, f["documentation"])
}

func (d *decoder) decode(f fields) ast.Node {
	switch f.nodeType() {
	case "PragmaDirective":
		return &ast.PragmaDirective{NodeInfo: f.info(), Literals: f.strs("literals")}
	case "ImportDirective":
		return d.importDirective(f)
	case "UsingForDirective":
		return d.usingFor(f)
	case "StructuredDocumentation":
		return &ast.StructuredDocumentation{NodeInfo: f.info(), Text: f.str("text")}
	case "IdentifierPath":
		return &ast.IdentifierPath{
			NodeInfo:              f.info(),
			Name:                  f.str("name"),
			NameLocations:         f.strs("nameLocations"),
			ReferencedDeclaration: f.id("referencedDeclaration"),
		}
	case "ContractDefinition":
		return d.contract(f)
	case "InheritanceSpecifier":
		return &ast.InheritanceSpecifier{
			NodeInfo:  f.info(),
			BaseName:  d.path(f["baseName"]),
			Arguments: d.exprs(f.list("arguments")),
		}
	case "StructDefinition":
		return &ast.StructDefinition{
			NodeInfo:      f.info(),
			Name:          f.str("name"),
			NameLocation:  f.str("nameLocation"),
			CanonicalName: f.str("canonicalName"),
			Members:       collect[*ast.VariableDeclaration](d, f.list("members")),
			Visibility:    ast.Visibility(f.str("visibility")),
			Scope:         f.id("scope"),
		}
	case "EnumDefinition":
		return &ast.EnumDefinition{
			NodeInfo:      f.info(),
			Name:          f.str("name"),
			NameLocation:  f.str("nameLocation"),
			CanonicalName: f.str("canonicalName"),
			Members:       collect[*ast.EnumValue](d, f.list("members")),
		}
	case "EnumValue":
		return &ast.EnumValue{NodeInfo: f.info(), Name: f.str("name"), NameLocation: f.str("nameLocation")}
	case "EventDefinition":
		return &ast.EventDefinition{
			NodeInfo:      f.info(),
			Name:          f.str("name"),
			NameLocation:  f.str("nameLocation"),
			Documentation: d.docs(f),
			Anonymous:     f.boolean("anonymous"),
			Parameters:    d.params(f, "parameters"),
			EventSelector: f.str("eventSelector"),
		}
	case "ErrorDefinition":
		return &ast.ErrorDefinition{
			NodeInfo:      f.info(),
			Name:          f.str("name"),
			NameLocation:  f.str("nameLocation"),
			Documentation: d.docs(f),
			Parameters:    d.params(f, "parameters"),
			ErrorSelector: f.str("errorSelector"),
		}
	case "UserDefinedValueTypeDefinition":
		return &ast.UserDefinedValueTypeDefinition{
			NodeInfo:       f.info(),
			Name:           f.str("name"),
			NameLocation:   f.str("nameLocation"),
			CanonicalName:  f.str("canonicalName"),
			UnderlyingType: d.typeName(f["underlyingType"]),
		}
	case "FunctionDefinition":
		return d.function(f)
	case "ModifierDefinition":
		return &ast.ModifierDefinition{
			NodeInfo:      f.info(),
			Name:          f.str("name"),
			NameLocation:  f.str("nameLocation"),
			Documentation: d.docs(f),
			Visibility:    ast.Visibility(f.str("visibility")),
			Virtual:       f.boolean("virtual"),
			Overrides:     decodeAs[*ast.OverrideSpecifier](d, f["overrides"]),
			Parameters:    d.params(f, "parameters"),
			Body:          decodeAs[*ast.Block](d, f["body"]),
			BaseModifiers: f.ids("baseModifiers"),
		}
	case "ModifierInvocation":
		return &ast.ModifierInvocation{
			NodeInfo:     f.info(),
			ModifierName: d.path(f["modifierName"]),
			Arguments:    d.exprs(f.list("arguments")),
			Kind:         f.str("kind"),
		}
	case "OverrideSpecifier":
		return &ast.OverrideSpecifier{NodeInfo: f.info(), Overrides: d.paths(f.list("overrides"))}
	case "ParameterList":
		return &ast.ParameterList{NodeInfo: f.info(), Parameters: collect[*ast.VariableDeclaration](d, f.list("parameters"))}
	case "VariableDeclaration":
		return d.variable(f)

	case "ElementaryTypeName":
		return &ast.ElementaryTypeName{
			NodeInfo:         f.info(),
			Name:             f.str("name"),
			StateMutability:  ast.StateMutability(f.str("stateMutability")),
			TypeDescriptions: f.typeDescriptions("typeDescriptions"),
		}
	case "UserDefinedTypeName":
		return &ast.UserDefinedTypeName{
			NodeInfo:              f.info(),
			Name:                  f.str("name"),
			PathNode:              decodeAs[*ast.IdentifierPath](d, f["pathNode"]),
			ReferencedDeclaration: f.id("referencedDeclaration"),
			TypeDescriptions:      f.typeDescriptions("typeDescriptions"),
		}
	case "FunctionTypeName":
		return &ast.FunctionTypeName{
			NodeInfo:             f.info(),
			ParameterTypes:       d.params(f, "parameterTypes"),
			ReturnParameterTypes: d.params(f, "returnParameterTypes"),
			StateMutability:      ast.StateMutability(f.str("stateMutability")),
			Visibility:           ast.Visibility(f.str("visibility")),
			TypeDescriptions:     f.typeDescriptions("typeDescriptions"),
		}
	case "ArrayTypeName":
		return &ast.ArrayTypeName{
			NodeInfo:         f.info(),
			BaseType:         d.typeName(f["baseType"]),
			Length:           d.expr(f["length"]),
			TypeDescriptions: f.typeDescriptions("typeDescriptions"),
		}
	case "Mapping":
		return &ast.Mapping{
			NodeInfo:         f.info(),
			KeyType:          d.typeName(f["keyType"]),
			KeyName:          f.str("keyName"),
			ValueType:        d.typeName(f["valueType"]),
			ValueName:        f.str("valueName"),
			TypeDescriptions: f.typeDescriptions("typeDescriptions"),
		}
	}

	if s := d.statement(f); s != nil {
		return s
	}
	if e := d.expression(f); e != nil {
		return e
	}
	return nil
}

func (d *decoder) importDirective(f fields) *ast.ImportDirective {
	imp := &ast.ImportDirective{
		NodeInfo:     f.info(),
		File:         f.str("file"),
		AbsolutePath: f.str("absolutePath"),
		SourceUnit:   f.id("sourceUnit"),
		Scope:        f.id("scope"),
		UnitAlias:    f.str("unitAlias"),
	}
	for _, raw := range f.list("symbolAliases") {
		alias, ok := parseFields(raw)
		if !ok {
			continue
		}
		imp.SymbolAliases = append(imp.SymbolAliases, ast.SymbolAlias{
			Foreign:      decodeAs[*ast.Identifier](d, alias["foreign"]),
			Local:        alias.str("local"),
			NameLocation: alias.str("nameLocation"),
		})
	}
	return imp
}

func (d *decoder) usingFor(f fields) *ast.UsingForDirective {
	u := &ast.UsingForDirective{
		NodeInfo:    f.info(),
		LibraryName: d.path(f["libraryName"]),
		TypeName:    d.typeName(f["typeName"]),
		Global:      f.boolean("global"),
	}
	for _, raw := range f.list("functionList") {
		entry, ok := parseFields(raw)
		if !ok {
			continue
		}
		key := "function"
		if _, ok := entry[key]; !ok {
			key = "definition"
		}
		if p := d.path(entry[key]); p != nil {
			u.FunctionList = append(u.FunctionList, p)
		}
	}
	return u
}

func (d *decoder) contract(f fields) *ast.ContractDefinition {
	return &ast.ContractDefinition{
		NodeInfo:                f.info(),
		Name:                    f.str("name"),
		NameLocation:            f.str("nameLocation"),
		Documentation:           d.docs(f),
		Kind:                    ast.ContractKind(f.str("contractKind")),
		Abstract:                f.boolean("abstract"),
		FullyImplemented:        f.boolean("fullyImplemented"),
		BaseContracts:           collect[*ast.InheritanceSpecifier](d, f.list("baseContracts")),
		LinearizedBaseContracts: f.ids("linearizedBaseContracts"),
		ContractDependencies:    f.ids("contractDependencies"),
		UsedErrors:              f.ids("usedErrors"),
		UsedEvents:              f.ids("usedEvents"),
		Nodes:                   d.declarations(f.list("nodes")),
		Scope:                   f.id("scope"),
	}
}

func (d *decoder) function(f fields) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		NodeInfo:         f.info(),
		Name:             f.str("name"),
		NameLocation:     f.str("nameLocation"),
		Documentation:    d.docs(f),
		Kind:             ast.FunctionKind(f.str("kind")),
		StateMutability:  ast.StateMutability(f.str("stateMutability")),
		Visibility:       ast.Visibility(f.str("visibility")),
		Virtual:          f.boolean("virtual"),
		Implemented:      f.boolean("implemented"),
		Overrides:        decodeAs[*ast.OverrideSpecifier](d, f["overrides"]),
		Parameters:       d.params(f, "parameters"),
		ReturnParameters: d.params(f, "returnParameters"),
		Modifiers:        collect[*ast.ModifierInvocation](d, f.list("modifiers")),
		Body:             decodeAs[*ast.Block](d, f["body"]),
		FunctionSelector: f.str("functionSelector"),
		BaseFunctions:    f.ids("baseFunctions"),
		Scope:            f.id("scope"),
	}
}

func (d *decoder) variable(f fields) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		NodeInfo:         f.info(),
		Name:             f.str("name"),
		NameLocation:     f.str("nameLocation"),
		Documentation:    d.docs(f),
		Constant:         f.boolean("constant"),
		Mutability:       ast.Mutability(f.str("mutability")),
		StateVariable:    f.boolean("stateVariable"),
		StorageLocation:  ast.StorageLocation(f.str("storageLocation")),
		Visibility:       ast.Visibility(f.str("visibility")),
		Indexed:          f.boolean("indexed"),
		TypeName:         d.typeName(f["typeName"]),
		Value:            d.expr(f["value"]),
		Overrides:        decodeAs[*ast.OverrideSpecifier](d, f["overrides"]),
		FunctionSelector: f.str("functionSelector"),
		TypeDescriptions: f.typeDescriptions("typeDescriptions"),
		Scope:            f.id("scope"),
	}
}

type externalReferenceJSON struct {
	Declaration ast.NodeID `json:"declaration"`
	IsOffset    bool       `json:"isOffset"`
	IsSlot      bool       `json:"isSlot"`
	Src         string     `json:"src"`
	Suffix      string     `json:"suffix"`
	ValueSize   int        `json:"valueSize"`
}

func (d *decoder) statement(f fields) ast.Statement {
	switch f.nodeType() {
	case "Block":
		return &ast.Block{NodeInfo: f.info(), Statements: d.stmts(f.list("statements"))}
	case "UncheckedBlock":
		return &ast.UncheckedBlock{NodeInfo: f.info(), Statements: d.stmts(f.list("statements"))}
	case "PlaceholderStatement":
		return &ast.PlaceholderStatement{NodeInfo: f.info()}
	case "IfStatement":
		return &ast.IfStatement{
			NodeInfo:  f.info(),
			Condition: d.expr(f["condition"]),
			TrueBody:  d.stmt(f["trueBody"]),
			FalseBody: d.stmt(f["falseBody"]),
		}
	case "ForStatement":
		return &ast.ForStatement{
			NodeInfo:                 f.info(),
			InitializationExpression: d.stmt(f["initializationExpression"]),
			Condition:                d.expr(f["condition"]),
			LoopExpression:           decodeAs[*ast.ExpressionStatement](d, f["loopExpression"]),
			Body:                     d.stmt(f["body"]),
		}
	case "WhileStatement":
		return &ast.WhileStatement{NodeInfo: f.info(), Condition: d.expr(f["condition"]), Body: d.stmt(f["body"])}
	case "DoWhileStatement":
		return &ast.DoWhileStatement{NodeInfo: f.info(), Condition: d.expr(f["condition"]), Body: d.stmt(f["body"])}
	case "Continue":
		return &ast.Continue{NodeInfo: f.info()}
	case "Break":
		return &ast.Break{NodeInfo: f.info()}
	case "Return":
		return &ast.Return{
			NodeInfo:                 f.info(),
			Expression:               d.expr(f["expression"]),
			FunctionReturnParameters: f.id("functionReturnParameters"),
		}
	case "RevertStatement":
		return &ast.RevertStatement{NodeInfo: f.info(), ErrorCall: decodeAs[*ast.FunctionCall](d, f["errorCall"])}
	case "EmitStatement":
		return &ast.EmitStatement{NodeInfo: f.info(), EventCall: decodeAs[*ast.FunctionCall](d, f["eventCall"])}
	case "TryStatement":
		return &ast.TryStatement{
			NodeInfo:     f.info(),
			ExternalCall: decodeAs[*ast.FunctionCall](d, f["externalCall"]),
			Clauses:      d.clauses(f.list("clauses")),
		}
	case "VariableDeclarationStatement":
		stmt := &ast.VariableDeclarationStatement{
			NodeInfo:     f.info(),
			InitialValue: d.expr(f["initialValue"]),
		}
		// Assignments uses null for skipped tuple slots.
		var assignments []*ast.NodeID
		f.get("assignments", &assignments)
		for _, a := range assignments {
			if a == nil {
				stmt.Assignments = append(stmt.Assignments, ast.IrrelevantID)
				continue
			}
			stmt.Assignments = append(stmt.Assignments, *a)
		}
		for _, raw := range f.list("declarations") {
			decl, _ := d.node(raw).(*ast.VariableDeclaration)
			stmt.Declarations = append(stmt.Declarations, decl)
		}
		return stmt
	case "ExpressionStatement":
		return &ast.ExpressionStatement{NodeInfo: f.info(), Expression: d.expr(f["expression"])}
	case "InlineAssembly":
		asm := &ast.InlineAssembly{
			NodeInfo:   f.info(),
			EVMVersion: f.str("evmVersion"),
			Flags:      f.strs("flags"),
		}
		var refs []externalReferenceJSON
		f.get("externalReferences", &refs)
		for _, r := range refs {
			asm.ExternalReferences = append(asm.ExternalReferences, ast.ExternalReference(r))
		}
		return asm
	}
	return nil
}

// clauses are decoded here because TryCatchClause is not a Statement.
func (d *decoder) clauses(raws []json.RawMessage) []*ast.TryCatchClause {
	var out []*ast.TryCatchClause
	for _, raw := range raws {
		f, ok := parseFields(raw)
		if !ok || f.nodeType() != "TryCatchClause" {
			continue
		}
		out = append(out, &ast.TryCatchClause{
			NodeInfo:   f.info(),
			ErrorName:  f.str("errorName"),
			Parameters: d.params(f, "parameters"),
			Block:      decodeAs[*ast.Block](d, f["block"]),
		})
	}
	return out
}

func (d *decoder) expression(f fields) ast.Expression {
	switch f.nodeType() {
	case "Literal":
		return &ast.Literal{
			NodeInfo:        f.info(),
			ExprInfo:        f.exprInfo(),
			Kind:            ast.LiteralKind(f.str("kind")),
			Value:           f.str("value"),
			HexValue:        f.str("hexValue"),
			Subdenomination: f.str("subdenomination"),
		}
	case "Identifier":
		return &ast.Identifier{
			NodeInfo:               f.info(),
			ExprInfo:               f.exprInfo(),
			Name:                   f.str("name"),
			ReferencedDeclaration:  f.optID("referencedDeclaration"),
			OverloadedDeclarations: f.ids("overloadedDeclarations"),
		}
	case "UnaryOperation":
		return &ast.UnaryOperation{
			NodeInfo:      f.info(),
			ExprInfo:      f.exprInfo(),
			Operator:      f.str("operator"),
			Prefix:        f.boolean("prefix"),
			SubExpression: d.expr(f["subExpression"]),
		}
	case "BinaryOperation":
		return &ast.BinaryOperation{
			NodeInfo:        f.info(),
			ExprInfo:        f.exprInfo(),
			Operator:        f.str("operator"),
			LeftExpression:  d.expr(f["leftExpression"]),
			RightExpression: d.expr(f["rightExpression"]),
			CommonType:      f.typeDescriptions("commonType"),
		}
	case "Conditional":
		return &ast.Conditional{
			NodeInfo:        f.info(),
			ExprInfo:        f.exprInfo(),
			Condition:       d.expr(f["condition"]),
			TrueExpression:  d.expr(f["trueExpression"]),
			FalseExpression: d.expr(f["falseExpression"]),
		}
	case "Assignment":
		return &ast.Assignment{
			NodeInfo:      f.info(),
			ExprInfo:      f.exprInfo(),
			Operator:      f.str("operator"),
			LeftHandSide:  d.expr(f["leftHandSide"]),
			RightHandSide: d.expr(f["rightHandSide"]),
		}
	case "FunctionCall":
		return &ast.FunctionCall{
			NodeInfo:   f.info(),
			ExprInfo:   f.exprInfo(),
			Kind:       ast.FunctionCallKind(f.str("kind")),
			Expression: d.expr(f["expression"]),
			Arguments:  d.exprs(f.list("arguments")),
			Names:      f.strs("names"),
			TryCall:    f.boolean("tryCall"),
		}
	case "FunctionCallOptions":
		return &ast.FunctionCallOptions{
			NodeInfo:   f.info(),
			ExprInfo:   f.exprInfo(),
			Expression: d.expr(f["expression"]),
			Names:      f.strs("names"),
			Options:    d.exprs(f.list("options")),
		}
	case "IndexAccess":
		return &ast.IndexAccess{
			NodeInfo:        f.info(),
			ExprInfo:        f.exprInfo(),
			BaseExpression:  d.expr(f["baseExpression"]),
			IndexExpression: d.expr(f["indexExpression"]),
		}
	case "IndexRangeAccess":
		return &ast.IndexRangeAccess{
			NodeInfo:        f.info(),
			ExprInfo:        f.exprInfo(),
			BaseExpression:  d.expr(f["baseExpression"]),
			StartExpression: d.expr(f["startExpression"]),
			EndExpression:   d.expr(f["endExpression"]),
		}
	case "MemberAccess":
		return &ast.MemberAccess{
			NodeInfo:              f.info(),
			ExprInfo:              f.exprInfo(),
			Expression:            d.expr(f["expression"]),
			MemberName:            f.str("memberName"),
			MemberLocation:        f.str("memberLocation"),
			ReferencedDeclaration: f.optID("referencedDeclaration"),
		}
	case "ElementaryTypeNameExpression":
		return &ast.ElementaryTypeNameExpression{
			NodeInfo: f.info(),
			ExprInfo: f.exprInfo(),
			TypeName: decodeAs[*ast.ElementaryTypeName](d, f["typeName"]),
		}
	case "TupleExpression":
		return &ast.TupleExpression{
			NodeInfo:      f.info(),
			ExprInfo:      f.exprInfo(),
			Components:    d.exprs(f.list("components")),
			IsInlineArray: f.boolean("isInlineArray"),
		}
	case "NewExpression":
		return &ast.NewExpression{
			NodeInfo: f.info(),
			ExprInfo: f.exprInfo(),
			TypeName: d.typeName(f["typeName"]),
		}
	}
	return nil
}
