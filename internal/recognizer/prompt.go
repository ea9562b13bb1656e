package recognizer

import "snaptex/internal/domain"

// headerFooterSuffix is appended when the caller asks the model itself to
// skip running headers and page furniture.
const headerFooterSuffix = `

Omit page numbers, running headers, and running footers from your output. Do not transcribe lines that are page furniture rather than content.`

var prompts = map[domain.OutputFormat]string{
	domain.FormatText: `Extract all text from this image exactly as it appears. Preserve the reading order and line structure. Return only the extracted text with no commentary, no code fences, and no explanation.`,

	domain.FormatMarkdown: `Extract all text from this image and format it as Markdown. Preserve headings, lists, emphasis, and tables where the layout implies them. Return only the Markdown with no commentary and no surrounding code fences.`,

	domain.FormatLatexNote: `Extract the mathematical content from this image as LaTeX. Output bare KaTeX-compatible LaTeX with NO surrounding math delimiters ($, $$, \[, \]); the consumer supplies its own delimiters. Never use the tikz package or any diagram macros; describe diagrams in plain words instead. Return only the LaTeX.`,

	domain.FormatLatexNoteMD: `Extract all content from this image as Markdown. Typeset mathematics in KaTeX-compatible LaTeX: use $...$ for inline math and $$...$$ for displayed equations. Never use the tikz package or any diagram macros. Return only the result with no commentary.`,

	domain.FormatLatexFull: `Extract all content from this image as a complete LaTeX document: include \documentclass, the needed \usepackage lines, \begin{document} and \end{document}. The document must compile as-is. Return only the LaTeX source.`,

	domain.FormatStructured: `Extract all content from this image. Wrap every standalone mathematical expression in $$ ... $$ on its own lines, and keep prose as plain paragraphs separated by blank lines. Return only the result with no commentary.`,
}

// BuildPrompt returns the fixed instruction for an output format, optionally
// extended with the header/footer omission suffix. Unknown formats fall back
// to the plain-text instruction.
func BuildPrompt(format domain.OutputFormat, removeHeaderFooter bool) string {
	p, ok := prompts[format]
	if !ok {
		p = prompts[domain.FormatText]
	}
	if removeHeaderFooter {
		p += headerFooterSuffix
	}
	return p
}
