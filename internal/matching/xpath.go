package matching

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// XPath is a compiled etree path with an optional trailing attribute
// selector ("/path/to/elem/@attr").
type XPath struct {
	raw  string
	elem etree.Path
	attr string
}

// CompileXPath parses an etree path expression.
//
// Supported syntax is what etree understands plus a trailing attribute:
//   - /path/to/element - absolute path
//   - //element - find anywhere in document
//   - /path/to/element/@attr - attribute value
//   - /path/to/element[1] - indexed access (1-based)
func CompileXPath(path string) (*XPath, error) {
	elemPath, attr := path, ""
	if i := strings.LastIndex(path, "/@"); i >= 0 {
		elemPath, attr = path[:i], path[i+2:]
	}
	p, err := etree.CompilePath(elemPath)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression %q: %w", path, err)
	}
	return &XPath{raw: path, elem: p, attr: attr}, nil
}

// String returns the expression as written.
func (x *XPath) String() string { return x.raw }

// MatchXPath reports whether the XML body has a node at x whose trimmed
// text (or attribute value) equals expected. Non-XML bodies never match.
func MatchXPath(x *XPath, expected, body string) bool {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return false
	}

	for _, elem := range doc.FindElementsPath(x.elem) {
		if x.attr == "" {
			if strings.TrimSpace(elem.Text()) == expected {
				return true
			}
			continue
		}
		if a := elem.SelectAttr(x.attr); a != nil && a.Value == expected {
			return true
		}
	}
	return false
}
