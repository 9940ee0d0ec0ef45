package detect

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// Selector returns the 4-byte ABI selector of fn as lowercase hex without a
// 0x prefix. The compiler's value is used when present; otherwise it is
// computed from the canonical signature.
func Selector(ws *workspace.Workspace, fn *ast.FunctionDefinition) (string, bool) {
	if fn.FunctionSelector != "" {
		return strings.ToLower(fn.FunctionSelector), true
	}
	signature, ok := Signature(ws, fn)
	if !ok {
		return "", false
	}
	return common.Bytes2Hex(crypto.Keccak256([]byte(signature))[:4]), true
}

// Signature renders the canonical ABI signature of fn, e.g.
// "transfer(address,uint256)".
func Signature(ws *workspace.Workspace, fn *ast.FunctionDefinition) (string, bool) {
	var params []string
	if fn.Parameters != nil {
		for _, p := range fn.Parameters.Parameters {
			canonical, ok := canonicalType(ws, p.TypeName, 0)
			if !ok {
				return "", false
			}
			params = append(params, canonical)
		}
	}
	return fn.Name + "(" + strings.Join(params, ",") + ")", true
}

func canonicalType(ws *workspace.Workspace, t ast.TypeName, depth int) (string, bool) {
	if depth >= ast.MaxDepth {
		return "", false
	}

	switch t := t.(type) {
	case *ast.ElementaryTypeName:
		switch t.Name {
		case "address payable":
			return "address", true
		case "uint":
			return "uint256", true
		case "int":
			return "int256", true
		case "byte":
			return "bytes1", true
		case "fixed":
			return "fixed128x18", true
		case "ufixed":
			return "ufixed128x18", true
		}
		return t.Name, t.Name != ""
	case *ast.ArrayTypeName:
		base, ok := canonicalType(ws, t.BaseType, depth+1)
		if !ok {
			return "", false
		}
		if t.Length == nil {
			return base + "[]", true
		}
		length, ok := t.Length.(*ast.Literal)
		if !ok {
			return "", false
		}
		return base + "[" + length.Value + "]", true
	case *ast.UserDefinedTypeName:
		decl, ok := ws.NodeByID(t.ReferencedDeclaration)
		if !ok {
			return "", false
		}
		switch decl := decl.(type) {
		case *ast.ContractDefinition:
			return "address", true
		case *ast.EnumDefinition:
			return "uint8", true
		case *ast.UserDefinedValueTypeDefinition:
			return canonicalType(ws, decl.UnderlyingType, depth+1)
		case *ast.StructDefinition:
			members := make([]string, 0, len(decl.Members))
			for _, m := range decl.Members {
				member, ok := canonicalType(ws, m.TypeName, depth+1)
				if !ok {
					return "", false
				}
				members = append(members, member)
			}
			return "(" + strings.Join(members, ",") + ")", true
		}
	case *ast.FunctionTypeName:
		return "function", true
	}
	return "", false
}
