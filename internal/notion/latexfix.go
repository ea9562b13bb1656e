package notion

import "regexp"

// Two targeted repairs for quirks in Notion's KaTeX renderer. Both are
// narrow by construction: widening either pattern mangles legitimate LaTeX.
var (
	// A binary operator followed by exactly one trailing letter renders the
	// letter glued to the operator; a thin space after it fixes the glyph
	// spacing. Multi-letter endings render fine and are left alone.
	trailingOperand = regexp.MustCompile(`((?:[=+\-]|\\times|\\div)\s*[A-Za-z])$`)

	// The differential d followed by x, y, z or t as its own word is
	// italicized as one multi-letter variable unless separated.
	differential = regexp.MustCompile(`\bd([xyzt])\b`)
)

// FixLatex applies the thin-space and differential repairs to one equation.
func FixLatex(latex string) string {
	if latex == "" {
		return latex
	}
	latex = trailingOperand.ReplaceAllString(latex, `$1\,`)
	latex = differential.ReplaceAllString(latex, "d $1")
	return latex
}
