package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NodeID is the compiler-assigned identifier of a node. IDs are unique across
// every source unit of one compilation.
type NodeID int64

// IrrelevantID is the positional placeholder used where an expression has no
// resolvable declaration.
const IrrelevantID NodeID = math.MinInt64

// Ref returns a pointer to id, for optional weak references.
func Ref(id NodeID) *NodeID {
	return &id
}

// NodeInfo carries the fields every identified node has.
type NodeInfo struct {
	ID  NodeID
	Src string
}

func (ni NodeInfo) GetNodeID() (NodeID, bool) { return ni.ID, true }
func (ni NodeInfo) GetSrc() string            { return ni.Src }

// TypeDescriptions is the type the compiler resolved for an expression or
// declaration. Empty strings mean the compiler did not emit the field.
type TypeDescriptions struct {
	TypeString     string
	TypeIdentifier string
}

// HasTypeString reports whether a type string was emitted.
func (td TypeDescriptions) HasTypeString() bool {
	return td.TypeString != ""
}

// SourceLocation is the parsed form of a src attribute ("offset:length:fileIndex").
type SourceLocation struct {
	Offset    int
	Length    int
	FileIndex int
}

// ParseSrc parses a src attribute. A missing file index is reported as -1.
func ParseSrc(src string) (SourceLocation, error) {
	parts := strings.Split(src, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return SourceLocation{}, fmt.Errorf("malformed src %q", src)
	}

	offset, err := strconv.Atoi(parts[0])
	if err != nil {
		return SourceLocation{}, fmt.Errorf("malformed src offset %q: %w", src, err)
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return SourceLocation{}, fmt.Errorf("malformed src length %q: %w", src, err)
	}

	loc := SourceLocation{Offset: offset, Length: length, FileIndex: -1}
	if len(parts) == 3 {
		if loc.FileIndex, err = strconv.Atoi(parts[2]); err != nil {
			return SourceLocation{}, fmt.Errorf("malformed src file index %q: %w", src, err)
		}
	}
	return loc, nil
}

// Valid reports whether the location points at real source text.
func (sl SourceLocation) Valid() bool {
	return sl.Offset >= 0 && sl.Length >= 0
}

// End returns the offset one past the last byte of the location.
func (sl SourceLocation) End() int {
	return sl.Offset + sl.Length
}

// Contains checks if a byte offset is within this location
func (sl SourceLocation) Contains(offset int) bool {
	return sl.Offset <= offset && offset < sl.End()
}

// Chopped returns the "offset:length" form used in finding keys.
func (sl SourceLocation) Chopped() string {
	return fmt.Sprintf("%d:%d", sl.Offset, sl.Length)
}

func (sl SourceLocation) String() string {
	return fmt.Sprintf("%d:%d:%d", sl.Offset, sl.Length, sl.FileIndex)
}

// LineOf returns the 1-based line of offset within source, or 0 when the
// offset lies outside of it.
func LineOf(source string, offset int) int {
	if offset < 0 || offset > len(source) {
		return 0
	}
	return strings.Count(source[:offset], "\n") + 1
}

// ColumnOf returns the 1-based column of offset within its line, or 0 when
// the offset lies outside the source.
func ColumnOf(source string, offset int) int {
	if offset < 0 || offset > len(source) {
		return 0
	}
	return offset - strings.LastIndexByte(source[:offset], '\n')
}
