package ast

import "testing"

func TestParseSrc(t *testing.T) {
	loc, err := ParseSrc("120:34:2")
	if err != nil {
		t.Fatalf("ParseSrc returned error: %v", err)
	}
	if loc.Offset != 120 || loc.Length != 34 || loc.FileIndex != 2 {
		t.Errorf("unexpected location %+v", loc)
	}
	if loc.Chopped() != "120:34" {
		t.Errorf("Chopped() = %q", loc.Chopped())
	}
	if !loc.Contains(153) || loc.Contains(154) {
		t.Errorf("Contains boundaries wrong for %v", loc)
	}

	loc, err = ParseSrc("7:3")
	if err != nil {
		t.Fatalf("ParseSrc without file index returned error: %v", err)
	}
	if loc.FileIndex != -1 {
		t.Errorf("expected missing file index to be -1, got %d", loc.FileIndex)
	}

	for _, bad := range []string{"", "1", "a:2:3", "1:b:3", "1:2:c", "1:2:3:4"} {
		if _, err := ParseSrc(bad); err == nil {
			t.Errorf("ParseSrc(%q) should fail", bad)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	source := "pragma solidity 0.8.20;\n\ncontract A {\n    uint x;\n}\n"
	offset := len("pragma solidity 0.8.20;\n\ncontract A {\n    ")

	if line := LineOf(source, offset); line != 4 {
		t.Errorf("LineOf = %d, want 4", line)
	}
	if col := ColumnOf(source, offset); col != 5 {
		t.Errorf("ColumnOf = %d, want 5", col)
	}
	if line := LineOf(source, 0); line != 1 {
		t.Errorf("LineOf(0) = %d, want 1", line)
	}
	if line := LineOf(source, len(source)+1); line != 0 {
		t.Errorf("LineOf past end = %d, want 0", line)
	}
}

func TestNodeInfo(t *testing.T) {
	id := &Identifier{NodeInfo: NodeInfo{ID: 12, Src: "1:2:0"}}
	got, ok := id.GetNodeID()
	if !ok || got != 12 {
		t.Errorf("GetNodeID = %d, %v", got, ok)
	}

	unhandled := &UnhandledExpression{}
	if _, ok := unhandled.GetNodeID(); ok {
		t.Error("UnhandledExpression without ID should report no ID")
	}
	unhandled.ID = Ref(4)
	if got, ok := unhandled.GetNodeID(); !ok || got != 4 {
		t.Errorf("GetNodeID = %d, %v", got, ok)
	}
}
