package lintdoc

import "github.com/takumakei/docgen-go/tokens"

// BlockAttrs is the parsed attribute line of a fenced code block inside
// rule documentation. The attribute line is a token list; language
// tokens select how the block is parsed and re-labelled, the remaining
// tokens control checking.
type BlockAttrs struct {
	// Lang is the language label re-emitted into the generated page.
	Lang string

	// Foreign marks a block in a language the checker does not handle.
	// Foreign blocks are never analyzed.
	Foreign bool

	// ExpectDiagnostic marks a block that must produce exactly one
	// diagnostic. Blocks without it must produce none.
	ExpectDiagnostic bool

	// Ignore skips checking for this block.
	Ignore bool
}

// ParseBlockAttrs parses a code block attribute line. Tokens may be
// separated by commas, spaces or tabs. When several language tokens are
// present the last one wins. Unknown tokens mark the block as a foreign
// language and disable checking.
func ParseBlockAttrs(line string) BlockAttrs {
	attrs := BlockAttrs{Foreign: true}
	for _, token := range tokens.Attrs(line) {
		switch token {
		case "cjs":
			attrs.language("js")
		case "js", "mjs", "jsx":
			attrs.language("jsx")
		case "ts", "mts", "cts":
			attrs.language("ts")
		case "tsx":
			attrs.language("tsx")
		case "json":
			attrs.language("json")
		case "css":
			attrs.language("css")
		case "expect_diagnostic":
			attrs.ExpectDiagnostic = true
		case "ignore":
			attrs.Ignore = true
		default:
			// Unknown tokens are foreign languages, kept verbatim in
			// the output label.
			attrs.Lang = token
			attrs.Foreign = true
			attrs.Ignore = true
		}
	}
	return attrs
}

func (a *BlockAttrs) language(label string) {
	a.Lang = label
	a.Foreign = false
}

// ext returns the file extension used for the synthetic file name
// passed to the checker.
func (a BlockAttrs) ext() string {
	switch a.Lang {
	case "json":
		return ".json"
	case "css":
		return ".css"
	case "ts", "tsx":
		return ".ts"
	default:
		return ".js"
	}
}
