// Package docstring parses the documentation texts attached to source
// objects into a short description plus per-parameter descriptions.
//
// Two conventions are recognized: indented "Args:" sections with
// "name: description" entries, and ":param name: description" field lines.
// Parsing is line-based and best-effort; callers are expected to treat
// errors as a reason to skip the text, not to fail.
package docstring

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed reports a parameter section entry that could not be parsed.
var ErrMalformed = errors.New("malformed docstring")

// ParamDoc is a single documented parameter.
type ParamDoc struct {
	Name        string
	Description string
}

// Docstring is the parsed result.
type Docstring struct {
	Short  string
	Params []ParamDoc
}

var (
	paramSectionRe = regexp.MustCompile(`^(Args|Arguments|Parameters):$`)
	otherSectionRe = regexp.MustCompile(`^[A-Z][A-Za-z ]*:$`)
	entryRe        = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\s*\([^)]*\))?:\s*(.*)$`)
	fieldRe        = regexp.MustCompile(`^:param\s+([A-Za-z_][A-Za-z0-9_]*):\s*(.*)$`)
)

// Parse extracts the short description and parameter descriptions from
// text. Empty text parses to an empty result.
func Parse(text string) (Docstring, error) {
	var doc Docstring
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}

	// short description: first paragraph before any section or field line
	var short []string
	for ; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" || paramSectionRe.MatchString(t) || otherSectionRe.MatchString(t) || strings.HasPrefix(t, ":param") {
			break
		}
		short = append(short, t)
	}
	doc.Short = strings.Join(short, " ")

	inSection := false
	entryIndent := -1
	var current *ParamDoc

	for ; i < len(lines); i++ {
		raw := lines[i]
		t := strings.TrimSpace(raw)

		switch {
		case t == "":
			current = nil

		case paramSectionRe.MatchString(t):
			inSection = true
			entryIndent = -1
			current = nil

		case otherSectionRe.MatchString(t):
			inSection = false
			current = nil

		case fieldRe.MatchString(t):
			m := fieldRe.FindStringSubmatch(t)
			doc.Params = append(doc.Params, ParamDoc{Name: m[1], Description: m[2]})
			current = &doc.Params[len(doc.Params)-1]

		case inSection:
			indent := indentOf(raw)
			if current != nil && entryIndent >= 0 && indent > entryIndent {
				current.Description = strings.TrimSpace(current.Description + " " + t)
				continue
			}
			m := entryRe.FindStringSubmatch(t)
			if m == nil {
				return Docstring{}, fmt.Errorf("%w: unparseable entry %q", ErrMalformed, t)
			}
			if entryIndent < 0 {
				entryIndent = indent
			}
			doc.Params = append(doc.Params, ParamDoc{Name: m[1], Description: m[2]})
			current = &doc.Params[len(doc.Params)-1]

		case current != nil && indentOf(raw) > 0:
			// continuation of a :param field line
			current.Description = strings.TrimSpace(current.Description + " " + t)

		default:
			current = nil
		}
	}

	return doc, nil
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}
