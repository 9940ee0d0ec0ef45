package detect

import (
	"errors"
	"strings"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/pragma"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

type unspecificSolidityPragma struct{}

func (unspecificSolidityPragma) Name() string       { return "unspecific-solidity-pragma" }
func (unspecificSolidityPragma) Title() string      { return "Solidity pragma should be specific, not wide" }
func (unspecificSolidityPragma) Severity() Severity { return Low }
func (unspecificSolidityPragma) Description() string {
	return "Consider using a specific version of Solidity in your contracts instead of a wide version. " +
		"For example, instead of `pragma solidity ^0.8.0;`, use `pragma solidity 0.8.0;`"
}

func (unspecificSolidityPragma) Detect(ws *workspace.Workspace) ([]Instance, error) {
	c := newCollector(ws)

	for _, directive := range workspace.Nodes[*ast.PragmaDirective](ws) {
		constraint, err := pragma.FromLiterals(directive.Literals)
		switch {
		case errors.Is(err, pragma.ErrNotSolidity):
			continue
		case err != nil:
			log.Debugf("unparsed pragma %q: %s", strings.Join(directive.Literals, ""), err)
			if widePragma(directive.Literals) {
				c.capture(directive, "")
			}
		case !constraint.Pinned():
			c.capture(directive, constraint.String())
		}
	}

	return c.instances(), nil
}

func widePragma(literals []string) bool {
	for _, literal := range literals {
		if strings.ContainsAny(literal, "^>") {
			return true
		}
	}
	return false
}
