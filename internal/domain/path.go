package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed fixture path expression. The textual grammar is
//
//	path := domainType "." role [ "[" index "]" ]
//
// Without an index the path references all matched hosts of the role within
// the matched domain; with an index it references the single host at that
// position.
type Path struct {
	DomainType string
	Role       string
	// Index is the host position, or -1 when the whole role list is
	// requested.
	Index int
}

// ParsePath parses a fixture path expression.
func ParsePath(expr string) (Path, error) {
	p := Path{Index: -1}

	typ, rest, ok := strings.Cut(expr, ".")
	if !ok || typ == "" || rest == "" {
		return p, &PathError{Path: expr, Reason: `expected "domainType.role" or "domainType.role[index]"`}
	}

	role := rest
	if open := strings.IndexByte(rest, '['); open >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return p, &PathError{Path: expr, Reason: "unterminated index"}
		}
		role = rest[:open]
		idx, err := strconv.Atoi(rest[open+1 : len(rest)-1])
		if err != nil || idx < 0 {
			return p, &PathError{Path: expr, Reason: "index must be a non-negative integer"}
		}
		p.Index = idx
	}

	if role == "" || strings.ContainsAny(role, ".[]") || strings.ContainsAny(typ, "[]") {
		return p, &PathError{Path: expr, Reason: "malformed path"}
	}

	p.DomainType = typ
	p.Role = role
	return p, nil
}

func (p Path) String() string {
	if p.Index < 0 {
		return fmt.Sprintf("%s.%s", p.DomainType, p.Role)
	}
	return fmt.Sprintf("%s.%s[%d]", p.DomainType, p.Role, p.Index)
}
