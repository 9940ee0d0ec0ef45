package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/loader"
	"github.com/Cyfrin/aderyn-sub000/internal/mutation"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

const counterAST = `{
  "absolutePath": "src/Counter.sol",
  "exportedSymbols": {"Counter": [20]},
  "id": 21,
  "license": "MIT",
  "nodeType": "SourceUnit",
  "src": "32:300:0",
  "nodes": [
    {"id": 1, "literals": ["solidity", "^", "0.8", ".13"], "nodeType": "PragmaDirective", "src": "32:24:0"},
    {
      "id": 20, "nodeType": "ContractDefinition", "src": "58:270:0",
      "name": "Counter", "nameLocation": "67:7:0", "contractKind": "contract",
      "abstract": false, "fullyImplemented": true, "baseContracts": [],
      "contractDependencies": [], "linearizedBaseContracts": [20], "scope": 21,
      "documentation": "legacy string documentation",
      "nodes": [
        {
          "id": 3, "nodeType": "VariableDeclaration", "src": "81:22:0",
          "name": "number", "nameLocation": "96:6:0", "constant": false,
          "functionSelector": "8381f58a", "mutability": "mutable", "scope": 20,
          "stateVariable": true, "storageLocation": "default", "visibility": "public",
          "typeDescriptions": {"typeIdentifier": "t_uint256", "typeString": "uint256"},
          "typeName": {
            "id": 2, "name": "uint256", "nodeType": "ElementaryTypeName", "src": "81:7:0",
            "typeDescriptions": {"typeIdentifier": "t_uint256", "typeString": "uint256"}
          }
        },
        {
          "id": 12, "nodeType": "FunctionDefinition", "src": "110:80:0",
          "name": "increment", "nameLocation": "119:9:0", "kind": "function",
          "functionSelector": "d09de08a", "implemented": true, "modifiers": [],
          "scope": 20, "stateMutability": "nonpayable", "virtual": false, "visibility": "public",
          "parameters": {"id": 4, "nodeType": "ParameterList", "parameters": [], "src": "128:2:0"},
          "returnParameters": {"id": 5, "nodeType": "ParameterList", "parameters": [], "src": "138:0:0"},
          "body": {
            "id": 11, "nodeType": "Block", "src": "138:52:0",
            "statements": [
              {
                "id": 9, "nodeType": "ExpressionStatement", "src": "148:8:0",
                "expression": {
                  "id": 8, "nodeType": "UnaryOperation", "src": "148:8:0",
                  "operator": "++", "prefix": false, "isConstant": false, "isLValue": false,
                  "isPure": false, "lValueRequested": false,
                  "typeDescriptions": {"typeIdentifier": "t_uint256", "typeString": "uint256"},
                  "subExpression": {
                    "id": 7, "nodeType": "Identifier", "src": "148:6:0", "name": "number",
                    "overloadedDeclarations": [], "referencedDeclaration": 3,
                    "typeDescriptions": {"typeIdentifier": "t_uint256", "typeString": "uint256"}
                  }
                }
              },
              {
                "id": 10, "nodeType": "ExpressionStatement", "src": "166:20:0",
                "expression": {
                  "id": 30, "nodeType": "TupleExpression", "src": "166:19:0", "isInlineArray": false,
                  "typeDescriptions": {"typeString": "tuple(,uint256)"},
                  "components": [
                    null,
                    {"id": 31, "nodeType": "FancyNewExpression", "src": "170:3:0", "typeDescriptions": {"typeString": "uint256"}}
                  ]
                }
              },
              {"id": 40, "nodeType": "MysteryStatement", "src": "186:1:0"},
              {
                "id": 41, "nodeType": "VariableDeclarationStatement", "src": "187:2:0",
                "assignments": [null, 42],
                "declarations": [
                  null,
                  {
                    "id": 42, "nodeType": "VariableDeclaration", "src": "187:1:0", "name": "b",
                    "constant": false, "mutability": "mutable", "stateVariable": false,
                    "storageLocation": "default", "visibility": "internal", "scope": 12,
                    "typeDescriptions": {"typeString": "uint256"}
                  }
                ],
                "initialValue": {
                  "id": 43, "nodeType": "Identifier", "src": "188:1:0", "name": "number",
                  "referencedDeclaration": 3, "typeDescriptions": {"typeString": "uint256"}
                }
              }
            ]
          }
        }
      ]
    }
  ]
}`

func unitJSON(id int, path string) string {
	return `{"nodeType": "SourceUnit", "id": ` + strconv.Itoa(id) + `, "src": "0:0:0", "absolutePath": "` + path + `", "nodes": []}`
}

func TestDecodeSourceUnit(t *testing.T) {
	units, err := loader.Decode("Counter.json", []byte(counterAST))
	require.NoError(t, err)
	require.Len(t, units, 1)
	unit := units[0]

	assert.Equal(t, ast.NodeID(21), unit.ID)
	assert.Equal(t, "src/Counter.sol", unit.AbsolutePath)
	assert.Equal(t, "MIT", unit.License)
	assert.Equal(t, []ast.NodeID{20}, unit.ExportedSymbols["Counter"])
	require.Len(t, unit.Nodes, 2)

	pragma := unit.Nodes[0].(*ast.PragmaDirective)
	assert.Equal(t, []string{"solidity", "^", "0.8", ".13"}, pragma.Literals)

	contract := unit.Nodes[1].(*ast.ContractDefinition)
	assert.Equal(t, "Counter", contract.Name)
	assert.Equal(t, ast.ContractKindContract, contract.Kind)
	assert.Equal(t, []ast.NodeID{20}, contract.LinearizedBaseContracts)
	assert.Nil(t, contract.Documentation)
	require.Len(t, contract.Nodes, 2)

	number := contract.Nodes[0].(*ast.VariableDeclaration)
	assert.True(t, number.StateVariable)
	assert.Equal(t, ast.Public, number.Visibility)
	assert.Equal(t, "uint256", number.TypeDescriptions.TypeString)
	assert.Equal(t, "t_uint256", number.TypeDescriptions.TypeIdentifier)
	assert.Equal(t, "uint256", number.TypeName.(*ast.ElementaryTypeName).Name)
	assert.Nil(t, number.Value)

	fn := contract.Nodes[1].(*ast.FunctionDefinition)
	assert.Equal(t, "increment", fn.Name)
	assert.True(t, fn.Implemented)
	assert.Equal(t, "d09de08a", fn.FunctionSelector)
	assert.Empty(t, fn.Parameters.Parameters)
	require.Len(t, fn.Body.Statements, 3, "unknown statements are dropped")

	inc := fn.Body.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.UnaryOperation)
	assert.Equal(t, "++", inc.Operator)
	assert.False(t, inc.Prefix)
	ident := inc.SubExpression.(*ast.Identifier)
	require.NotNil(t, ident.ReferencedDeclaration)
	assert.Equal(t, ast.NodeID(3), *ident.ReferencedDeclaration)

	tuple := fn.Body.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.TupleExpression)
	require.Len(t, tuple.Components, 2)
	assert.Nil(t, tuple.Components[0])
	unhandled, ok := tuple.Components[1].(*ast.UnhandledExpression)
	require.True(t, ok)
	assert.Equal(t, "FancyNewExpression", unhandled.TypeName)
	id, ok := unhandled.GetNodeID()
	assert.True(t, ok)
	assert.Equal(t, ast.NodeID(31), id)
	assert.Equal(t, "uint256", unhandled.GetTypeDescriptions().TypeString)

	decl := fn.Body.Statements[2].(*ast.VariableDeclarationStatement)
	assert.Equal(t, []ast.NodeID{ast.IrrelevantID, 42}, decl.Assignments)
	require.Len(t, decl.Declarations, 2)
	assert.Nil(t, decl.Declarations[0])
	assert.Equal(t, "b", decl.Declarations[1].Name)
}

func TestDecodedUnitIsAnalysable(t *testing.T) {
	units, err := loader.Decode("Counter.json", []byte(counterAST))
	require.NoError(t, err)
	ws := workspace.Build(units...)

	fn, ok := workspace.Lookup[*ast.FunctionDefinition](ws, 12)
	require.True(t, ok)
	contract, ok := ws.ContractDefinitionOf(fn)
	require.True(t, ok)
	assert.Equal(t, "Counter", contract.Name)

	finder := mutation.Find(ws, fn)
	assert.Equal(t, []ast.NodeID{3}, finder.DirectlyMutated())
}

func TestDecodeLayouts(t *testing.T) {
	standard := `{"sources": {
		"src/B.sol": {"id": 1, "ast": ` + unitJSON(100, "src/B.sol") + `},
		"src/A.sol": {"id": 0, "ast": ` + unitJSON(200, "") + `},
		"src/C.sol": {"id": 2}
	}}`
	units, err := loader.Decode("standard.json", []byte(standard))
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "src/A.sol", units[0].AbsolutePath, "path falls back to the sources key")
	assert.Equal(t, "src/B.sol", units[1].AbsolutePath)

	foundry := `{"abi": [], "bytecode": {"object": "0x"}, "ast": ` + unitJSON(7, "src/F.sol") + `}`
	units, err = loader.Decode("F.json", []byte(foundry))
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, ast.NodeID(7), units[0].ID)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		unknown bool
	}{
		{"no ast", `{"abi": []}`, true},
		{"array", `[1, 2]`, true},
		{"ast of the wrong kind", `{"ast": {"nodeType": "ContractDefinition"}}`, true},
		{"invalid json", `{"ast": `, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Decode("x.json", []byte(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.unknown, errors.Is(err, loader.ErrUnknownFormat))
		})
	}
}

func TestDedupe(t *testing.T) {
	a := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 1}, AbsolutePath: "b.sol"}
	b := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 2}, AbsolutePath: "a.sol"}
	dup := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 1}, AbsolutePath: "b.sol"}

	out, err := loader.Dedupe([]*ast.SourceUnit{a, nil, b, dup})
	require.NoError(t, err)
	assert.Equal(t, []*ast.SourceUnit{b, a}, out)
}

func TestDedupeKeepsFilesSharingAnID(t *testing.T) {
	first := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 100}, AbsolutePath: "src/A.sol"}
	second := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 100}, AbsolutePath: "src/B.sol"}
	other := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 7}, AbsolutePath: "src/C.sol"}

	out, err := loader.Dedupe([]*ast.SourceUnit{second, other, first})
	assert.Equal(t, []*ast.SourceUnit{first, second, other}, out)
	require.ErrorIs(t, err, loader.ErrIDCollision)
	assert.Contains(t, err.Error(), "unit 100 is src/A.sol, src/B.sol")
	assert.NotContains(t, err.Error(), "src/C.sol")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadPaths(t *testing.T) {
	root := t.TempDir()
	artifact := `{"abi": [], "ast": ` + counterAST + `}`
	writeFile(t, filepath.Join(root, "src", "Counter.sol"), "contract Counter {}\n")
	writeFile(t, filepath.Join(root, "out", "Counter.sol", "Counter.json"), artifact)
	writeFile(t, filepath.Join(root, "out", "Script.sol", "Counter.json"), artifact)
	writeFile(t, filepath.Join(root, "out", "cache.json"), `{"files": {}}`)
	writeFile(t, filepath.Join(root, "out", "list.json"), `[1]`)
	writeFile(t, filepath.Join(root, "out", "notes.txt"), `not json`)

	units, err := loader.LoadPaths(context.Background(), root, []string{"out"})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "src/Counter.sol", units[0].AbsolutePath)
	assert.Equal(t, "contract Counter {}\n", units[0].Source)

	_, err = loader.LoadPaths(context.Background(), root, []string{filepath.Join("out", "cache.json")})
	assert.ErrorIs(t, err, loader.ErrUnknownFormat)

	_, err = loader.LoadPaths(context.Background(), root, []string{"missing"})
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.LoadPaths(ctx, root, []string{"out"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadPathsKeepsUnitsFromSeparateCompilerRuns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out", "A.sol", "A.json"), `{"ast": `+unitJSON(100, "src/A.sol")+`}`)
	writeFile(t, filepath.Join(root, "out", "B.sol", "B.json"), `{"ast": `+unitJSON(100, "src/B.sol")+`}`)

	units, err := loader.LoadPaths(context.Background(), root, []string{"out"})
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "src/A.sol", units[0].AbsolutePath)
	assert.Equal(t, "src/B.sol", units[1].AbsolutePath)
}

func TestAttachSourceKeepsMissingFilesEmpty(t *testing.T) {
	unit := &ast.SourceUnit{AbsolutePath: "nowhere/Gone.sol"}
	loader.AttachSource(t.TempDir(), unit)
	assert.Empty(t, unit.Source)
}
