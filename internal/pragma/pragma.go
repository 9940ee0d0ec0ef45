// Package pragma parses Solidity version pragmas ("pragma solidity ^0.8.0;")
// into constraints that can be evaluated against compiler versions.
package pragma

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotSolidity is returned for pragma directives other than "solidity",
// such as "abicoder v2" or "experimental ABIEncoderV2".
var ErrNotSolidity = errors.New("not a solidity version pragma")

// Version is a compiler version.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(v.Major - other.Major)
	case v.Minor != other.Minor:
		return sign(v.Minor - other.Minor)
	default:
		return sign(v.Patch - other.Patch)
	}
}

func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// MustParseVersion parses a full "major.minor.patch" version and panics on error.
func MustParseVersion(s string) Version {
	p, err := parsePartial(s)
	if err != nil || p.fields != 3 {
		panic(fmt.Sprintf("pragma: invalid version %q", s))
	}
	return p.Version
}

// partial is a version with fewer than three numeric fields or a wildcard,
// e.g. "0.8" or "0.8.x". Missing fields are zero.
type partial struct {
	Version
	fields int
}

func parsePartial(s string) (partial, error) {
	var p partial
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return p, fmt.Errorf("malformed version %q", s)
	}
	for i, part := range parts {
		if part == "x" || part == "X" || part == "*" {
			break
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return p, fmt.Errorf("malformed version %q: %w", s, err)
		}
		switch i {
		case 0:
			p.Major = n
		case 1:
			p.Minor = n
		case 2:
			p.Patch = n
		}
		p.fields++
	}
	return p, nil
}

// next returns the smallest version above every version p matches.
func (p partial) next() (Version, bool) {
	switch p.fields {
	case 1:
		return Version{Major: p.Major + 1}, true
	case 2:
		return Version{Major: p.Major, Minor: p.Minor + 1}, true
	case 3:
		return Version{Major: p.Major, Minor: p.Minor, Patch: p.Patch + 1}, true
	}
	return Version{}, false
}

type bound struct {
	v         Version
	inclusive bool
	set       bool
}

// interval is the set of versions between lo and hi.
type interval struct {
	lo, hi bound
}

func (iv interval) contains(v Version) bool {
	if iv.lo.set {
		c := v.Compare(iv.lo.v)
		if c < 0 || (c == 0 && !iv.lo.inclusive) {
			return false
		}
	}
	if iv.hi.set {
		c := v.Compare(iv.hi.v)
		if c > 0 || (c == 0 && !iv.hi.inclusive) {
			return false
		}
	}
	return true
}

func atLeast(v Version) bound { return bound{v: v, inclusive: true, set: true} }
func above(v Version) bound   { return bound{v: v, set: true} }
func below(v Version) bound   { return bound{v: v, set: true} }
func atMost(v Version) bound  { return bound{v: v, inclusive: true, set: true} }

func belowNext(p partial) bound {
	if next, ok := p.next(); ok {
		return below(next)
	}
	return bound{}
}

func comparatorInterval(op string, p partial) interval {
	floor := p.Version
	switch op {
	case "", "=":
		if p.fields == 3 {
			return interval{lo: atLeast(floor), hi: atMost(floor)}
		}
		if p.fields == 0 {
			return interval{}
		}
		return interval{lo: atLeast(floor), hi: belowNext(p)}
	case "^":
		switch {
		case p.fields == 0:
			return interval{}
		case p.Major > 0 || p.fields == 1:
			return interval{lo: atLeast(floor), hi: below(Version{Major: p.Major + 1})}
		case p.Minor > 0 || p.fields == 2:
			return interval{lo: atLeast(floor), hi: below(Version{Minor: p.Minor + 1})}
		default:
			return interval{lo: atLeast(floor), hi: below(Version{Patch: p.Patch + 1})}
		}
	case "~":
		switch p.fields {
		case 0:
			return interval{}
		case 1:
			return interval{lo: atLeast(floor), hi: below(Version{Major: p.Major + 1})}
		default:
			return interval{lo: atLeast(floor), hi: below(Version{Major: p.Major, Minor: p.Minor + 1})}
		}
	case ">=":
		return interval{lo: atLeast(floor)}
	case ">":
		if p.fields == 3 {
			return interval{lo: above(floor)}
		}
		if next, ok := p.next(); ok {
			return interval{lo: atLeast(next)}
		}
		return interval{lo: above(Version{Major: 1 << 30})}
	case "<":
		return interval{hi: below(floor)}
	case "<=":
		if p.fields == 3 {
			return interval{hi: atMost(floor)}
		}
		return interval{hi: belowNext(p)}
	}
	return interval{}
}

// versionRange is a conjunction of intervals.
type versionRange struct {
	intervals []interval
	pinned    bool
}

func (r versionRange) allows(v Version) bool {
	for _, iv := range r.intervals {
		if !iv.contains(v) {
			return false
		}
	}
	return true
}

// lowest returns the smallest version the range could allow, ignoring its
// upper bounds.
func (r versionRange) lowest() Version {
	var lo bound
	for _, iv := range r.intervals {
		if !iv.lo.set {
			continue
		}
		if !lo.set || lo.v.Less(iv.lo.v) || (lo.v == iv.lo.v && !iv.lo.inclusive) {
			lo = iv.lo
		}
	}
	if !lo.set {
		return Version{}
	}
	if lo.inclusive {
		return lo.v
	}
	return Version{Major: lo.v.Major, Minor: lo.v.Minor, Patch: lo.v.Patch + 1}
}

// Constraint is a parsed version requirement.
type Constraint struct {
	text   string
	ranges []versionRange
}

// Parse parses a constraint such as "^0.8.0", ">=0.6.2 <0.9.0",
// "0.8.0 - 0.8.9" or "0.7.6 || ^0.8.0".
func Parse(text string) (*Constraint, error) {
	parsed, err := constraintParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("parse version constraint %q: %w", text, err)
	}

	c := &Constraint{text: strings.TrimSpace(text)}
	for _, r := range parsed.Ranges {
		var vr versionRange
		if r.Hyphen != nil {
			from, err := parsePartial(r.Hyphen.From)
			if err != nil {
				return nil, err
			}
			to, err := parsePartial(r.Hyphen.To)
			if err != nil {
				return nil, err
			}
			hi := belowNext(to)
			if to.fields == 3 {
				hi = atMost(to.Version)
			}
			vr.intervals = append(vr.intervals, interval{lo: atLeast(from.Version), hi: hi})
		}
		for _, cmp := range r.Comparators {
			p, err := parsePartial(cmp.Version)
			if err != nil {
				return nil, err
			}
			vr.intervals = append(vr.intervals, comparatorInterval(cmp.Op, p))
			vr.pinned = len(r.Comparators) == 1 && (cmp.Op == "" || cmp.Op == "=") && p.fields == 3
		}
		c.ranges = append(c.ranges, vr)
	}
	return c, nil
}

// FromLiterals rebuilds a constraint from the literals of a pragma directive,
// e.g. ["solidity", "^", "0.8", ".20"].
func FromLiterals(literals []string) (*Constraint, error) {
	if len(literals) == 0 || literals[0] != "solidity" {
		return nil, ErrNotSolidity
	}
	return Parse(strings.Join(literals[1:], ""))
}

// Allows reports whether v satisfies the constraint.
func (c *Constraint) Allows(v Version) bool {
	for _, r := range c.ranges {
		if r.allows(v) {
			return true
		}
	}
	return false
}

// AllowsBelow reports whether some version lower than v satisfies the constraint.
func (c *Constraint) AllowsBelow(v Version) bool {
	for _, r := range c.ranges {
		lowest := r.lowest()
		if lowest.Less(v) && r.allows(lowest) {
			return true
		}
	}
	return false
}

// Pinned reports whether the constraint names exactly one version.
func (c *Constraint) Pinned() bool {
	return len(c.ranges) == 1 && c.ranges[0].pinned
}

func (c *Constraint) String() string {
	return c.text
}
