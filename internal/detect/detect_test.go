package detect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/ast/asttest"
	"github.com/Cyfrin/aderyn-sub000/internal/detect"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

func run(t *testing.T, name string, units ...*ast.SourceUnit) []detect.Instance {
	t.Helper()
	d, err := detect.Lookup(name)
	require.NoError(t, err)
	instances, err := d.Detect(workspace.Build(units...))
	require.NoError(t, err)
	return instances
}

func ids(instances []detect.Instance) []ast.NodeID {
	var out []ast.NodeID
	for _, instance := range instances {
		out = append(out, instance.NodeID)
	}
	return out
}

func elementary(id ast.NodeID, name string) *ast.ElementaryTypeName {
	return &ast.ElementaryTypeName{
		NodeInfo:         ast.NodeInfo{ID: id, Src: "0:0:0"},
		Name:             name,
		TypeDescriptions: ast.TypeDescriptions{TypeString: name},
	}
}

func TestUncheckedReturn(t *testing.T) {
	b := asttest.New()
	get := b.Function("get", b.Return(b.Number("1")))
	get.ReturnParameters = b.Params(b.LocalVar("", "uint256", ast.LocationDefault))
	set := b.Function("set")

	dropped := b.CallFunction(get, b.Number("7"))
	used := b.CallFunction(get)
	local := b.LocalVar("v", "uint256", ast.LocationDefault)
	caller := b.Function("caller",
		b.ExprStmt(dropped),
		b.DeclStmt(used, local),
		b.ExprStmt(b.CallFunction(set)),
	)
	unit := b.SourceUnit("Unchecked.sol", b.Contract("Unchecked", get, set, caller))

	instances := run(t, "unchecked-return", unit)
	require.Len(t, instances, 1)
	assert.Equal(t, dropped.ID, instances[0].NodeID)
	assert.Equal(t, "Unchecked.sol", instances[0].Path)
	assert.Equal(t, "get(7)", instances[0].Hint)
}

func constantFixture(pragmaLiterals ...string) (*ast.SourceUnit, *ast.FunctionDefinition) {
	b := asttest.New()
	counter := b.StateVar("counter", "uint256")
	bump := b.Function("bump", b.ExprStmt(b.Unary("++", false, b.Ident(counter))))
	bump.Visibility = ast.Internal
	peek := b.Function("peek", b.ExprStmt(b.CallFunction(bump)), b.Return(b.Ident(counter)))
	peek.StateMutability = ast.View
	reader := b.Function("read", b.Return(b.Ident(counter)))
	reader.StateMutability = ast.View

	nodes := []ast.Node{}
	if len(pragmaLiterals) > 0 {
		nodes = append(nodes, b.Pragma(pragmaLiterals...))
	}
	nodes = append(nodes, b.Contract("Legacy", counter, bump, peek, reader))
	return b.SourceUnit("Legacy.sol", nodes...), peek
}

func TestConstantFunctionChangesState(t *testing.T) {
	unit, peek := constantFixture("solidity", "^", "0.4", ".24")
	assert.Equal(t, []ast.NodeID{peek.ID}, ids(run(t, "constant-function-changes-state", unit)))

	unit, peek = constantFixture()
	assert.Equal(t, []ast.NodeID{peek.ID}, ids(run(t, "constant-function-changes-state", unit)))

	unit, _ = constantFixture("solidity", "^", "0.8", ".0")
	assert.Empty(t, run(t, "constant-function-changes-state", unit))
}

func TestDeleteNestedMapping(t *testing.T) {
	b := asttest.New()
	inner := b.StateVar("allowed", "mapping(address => bool)")
	inner.StateVariable = false
	amount := b.StateVar("amount", "uint256")
	amount.StateVariable = false
	withMapping := b.Struct("Account", inner, amount)
	plain := b.Struct("Plain", b.LocalVar("x", "uint256", ast.LocationDefault))

	mappingOf := func(id ast.NodeID, s *ast.StructDefinition) *ast.Mapping {
		return &ast.Mapping{
			NodeInfo: ast.NodeInfo{ID: id, Src: "0:0:0"},
			KeyType:  elementary(id+1, "address"),
			ValueType: &ast.UserDefinedTypeName{
				NodeInfo:              ast.NodeInfo{ID: id + 2, Src: "0:0:0"},
				Name:                  s.Name,
				ReferencedDeclaration: s.ID,
			},
		}
	}

	accounts := b.StateVar("accounts", "mapping(address => struct Account storage ref)")
	accounts.TypeName = mappingOf(10_000, withMapping)
	plains := b.StateVar("plains", "mapping(address => struct Plain storage ref)")
	plains.TypeName = mappingOf(10_010, plain)
	who := b.LocalVar("who", "address", ast.LocationDefault)

	flagged := b.Unary("delete", true, b.Index(b.Ident(accounts), b.Ident(who), "struct Account storage ref"))
	branched := b.Unary("delete", true, b.Index(b.Ident(accounts), b.Ident(who), "struct Account storage ref"))
	choice := &ast.Conditional{
		NodeInfo:        ast.NodeInfo{ID: 10_020, Src: "0:0:0"},
		Condition:       b.Number("1"),
		TrueExpression:  branched,
		FalseExpression: b.Unary("delete", true, b.Index(b.Ident(plains), b.Ident(who), "struct Plain storage ref")),
	}
	fn := b.Function("wipe",
		b.ExprStmt(flagged),
		b.ExprStmt(b.Unary("delete", true, b.Index(b.Ident(plains), b.Ident(who), "struct Plain storage ref"))),
		b.ExprStmt(b.Unary("delete", true, b.Ident(accounts))),
		b.ExprStmt(choice),
	)
	fn.Parameters = b.Params(who)
	unit := b.SourceUnit("Nested.sol", b.Contract("Nested", withMapping, plain, accounts, plains, fn))

	instances := run(t, "delete-nested-mapping", unit)
	assert.Equal(t, []ast.NodeID{flagged.ID, branched.ID}, ids(instances))
	assert.Equal(t, "Account", instances[0].Hint)
}

func TestUnspecificSolidityPragma(t *testing.T) {
	b := asttest.New()
	wide := b.Pragma("solidity", "^", "0.8", ".0")
	ranged := b.Pragma("solidity", ">=", "0.6", ".2", "<", "0.9", ".0")
	pinned := b.Pragma("solidity", "0.8", ".20")
	abicoder := b.Pragma("abicoder", "v2")
	garbled := b.Pragma("solidity", "^", "0.8", ".", "!")

	units := []*ast.SourceUnit{
		b.SourceUnit("A.sol", wide, abicoder),
		b.SourceUnit("B.sol", ranged),
		b.SourceUnit("C.sol", pinned),
		b.SourceUnit("D.sol", garbled),
	}

	instances := run(t, "unspecific-solidity-pragma", units...)
	assert.Equal(t, []ast.NodeID{wide.ID, ranged.ID, garbled.ID}, ids(instances))
	assert.Equal(t, "^0.8.0", instances[0].Hint)
}

func TestStateVariableCouldBeConstant(t *testing.T) {
	b := asttest.New()
	fixed := b.StateVar("fee", "uint256")
	fixed.Value = b.Number("5")
	written := b.StateVar("owner", "uint256")
	written.Value = b.Number("1")
	noInit := b.StateVar("total", "uint256")
	already := b.StateVar("MAX", "uint256")
	already.Value = b.Number("9")
	already.Constant = true
	already.Mutability = ast.Constant
	text := b.StateVar("name", "string")
	text.Value = &ast.Literal{NodeInfo: ast.NodeInfo{ID: 10_000, Src: "0:0:0"}, Kind: ast.LiteralString, Value: "x"}

	setOwner := b.Function("setOwner", b.ExprStmt(b.Assign(b.Ident(written), b.Number("2"))))
	members := []ast.Node{fixed, written, noInit, already, text, setOwner}

	unit := b.SourceUnit("Vars.sol", b.Contract("Vars", members...))
	assert.Equal(t, []ast.NodeID{fixed.ID}, ids(run(t, "state-variable-could-be-constant", unit)))

	// A write through a pointer whose target is unknown makes every
	// variable's status unknown.
	p := b.LocalVar("p", "struct S storage pointer", ast.LocationStorage)
	touch := b.Function("touch", b.ExprStmt(b.Assign(b.Member(b.Ident(p), "a", "uint256"), b.Number("1"))))
	touch.Parameters = b.Params(p)
	touch.Visibility = ast.Internal
	unit = b.SourceUnit("Vars.sol", b.Contract("Vars", append(members, touch)...))
	assert.Empty(t, run(t, "state-variable-could-be-constant", unit))
}

func TestFunctionSelectorCollision(t *testing.T) {
	b := asttest.New()
	first := b.Function("collate_propagate_storage")
	first.FunctionSelector = "42966c68"
	second := b.Function("burn")
	second.FunctionSelector = "42966C68"
	overload := b.Function("burn")
	overload.FunctionSelector = "42966c68"
	internal := b.Function("other")
	internal.Visibility = ast.Internal
	internal.FunctionSelector = "42966c68"
	unrelated := b.Function("mint")
	unrelated.FunctionSelector = "a0712d68"

	unit := b.SourceUnit("Sel.sol", b.Contract("Sel", first, second, overload, internal, unrelated))
	instances := run(t, "function-selector-collision", unit)
	assert.ElementsMatch(t, []ast.NodeID{first.ID, second.ID, overload.ID}, ids(instances))
	assert.Equal(t, "0x42966c68 is shared by burn, collate_propagate_storage", instances[0].Hint)
}

func TestSelectorComputation(t *testing.T) {
	b := asttest.New()
	to := b.LocalVar("to", "address", ast.LocationDefault)
	to.TypeName = elementary(10_000, "address")
	amount := b.LocalVar("amount", "uint", ast.LocationDefault)
	amount.TypeName = elementary(10_001, "uint")
	transfer := b.Function("transfer")
	transfer.Parameters = b.Params(to, amount)
	ws := workspace.Build(b.SourceUnit("T.sol", b.Contract("T", transfer)))

	sig, ok := detect.Signature(ws, transfer)
	require.True(t, ok)
	assert.Equal(t, "transfer(address,uint256)", sig)

	selector, ok := detect.Selector(ws, transfer)
	require.True(t, ok)
	assert.Equal(t, "a9059cbb", selector)

	dangling := b.LocalVar("s", "struct Missing memory", ast.LocationMemory)
	dangling.TypeName = &ast.UserDefinedTypeName{NodeInfo: ast.NodeInfo{ID: 10_002}, Name: "Missing", ReferencedDeclaration: 424242}
	broken := b.Function("broken")
	broken.Parameters = b.Params(dangling)
	_, ok = detect.Selector(ws, broken)
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	all := detect.All()
	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name(), all[i].Name())
	}

	_, err := detect.Lookup("no-such-detector")
	assert.True(t, errors.Is(err, detect.ErrUnknownDetector))

	selected, err := detect.Select([]string{"unchecked-return", "delete-nested-mapping", "unchecked-return"}, []string{"delete-nested-mapping"})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "unchecked-return", selected[0].Name())

	selected, err = detect.Select(nil, []string{"unchecked-return"})
	require.NoError(t, err)
	assert.Len(t, selected, 5)

	_, err = detect.Select(nil, []string{"bogus"})
	assert.True(t, errors.Is(err, detect.ErrUnknownDetector))
}

func TestSeverity(t *testing.T) {
	s, err := detect.ParseSeverity(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, detect.High, s)
	assert.True(t, detect.High > detect.Low)

	_, err = detect.ParseSeverity("medium")
	assert.Error(t, err)

	text, err := detect.Low.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "low", string(text))

	var parsed detect.Severity
	require.NoError(t, parsed.UnmarshalText([]byte("high")))
	assert.Equal(t, detect.High, parsed)
}

type failing struct{ detect.Detector }

func (failing) Name() string { return "failing" }
func (failing) Detect(*workspace.Workspace) ([]detect.Instance, error) {
	return nil, errors.New("boom")
}

func TestRun(t *testing.T) {
	unit, _ := constantFixture("solidity", "^", "0.4", ".24")
	ws := workspace.Build(unit)

	report, err := detect.Run(context.Background(), ws, detect.All())
	require.NoError(t, err)
	assert.Len(t, report.Detectors, 6)
	assert.Equal(t, []string{"Legacy.sol"}, report.Files)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, "constant-function-changes-state", report.Issues[0].Name)
	assert.Equal(t, detect.High, report.Issues[0].Severity)
	assert.True(t, report.HasHigh())
	for i := 1; i < len(report.Issues); i++ {
		assert.GreaterOrEqual(t, report.Issues[i-1].Severity, report.Issues[i].Severity)
	}

	highOnly := report.AtLeast(detect.High)
	assert.Equal(t, report.Count(detect.High), highOnly.Count(detect.High))
	assert.Zero(t, highOnly.Count(detect.Low))

	_, err = detect.Run(context.Background(), ws, []detect.Detector{failing{}})
	assert.ErrorContains(t, err, "detector failing: boom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = detect.Run(ctx, ws, detect.All())
	assert.ErrorIs(t, err, context.Canceled)
}
