package pipeline

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// blockTags are the elements isolated when they open a line and close
// anywhere before a blank line.
var blockTags = []atom.Atom{
	atom.P,
	atom.Div,
	atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
	atom.Blockquote,
	atom.Pre,
	atom.Table,
	atom.Dl,
	atom.Ol,
	atom.Ul,
	atom.Script,
	atom.Noscript,
	atom.Style,
	atom.Form,
	atom.Fieldset,
	atom.Iframe,
	atom.Math,
}

// editTags are only isolated by the nested pass, which needs the closing tag
// at the start of a line.
var editTags = []atom.Atom{
	atom.Ins,
	atom.Del,
}

// tagAlternation joins tag names into a regex alternation.
func tagAlternation(sets ...[]atom.Atom) string {
	var names []string
	for _, set := range sets {
		for _, a := range set {
			names = append(names, a.String())
		}
	}
	return strings.Join(names, "|")
}
