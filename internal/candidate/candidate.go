package candidate

import (
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// lineBreak matches the same separators as Unicode-aware line splitting:
// CRLF, LF, CR, VT, FF, FS, GS, RS, NEL, LS and PS.
var lineBreak = regexp.MustCompile(`\r\n|[\n\v\f\r\x1c\x1d\x1e\x{85}\x{2028}\x{2029}]`)

// Parse splits a raw completion into candidate commands: one per non-blank
// line, kept verbatim and in order of appearance.
func Parse(raw string) []string {
	candidates := []string{}
	for _, line := range lineBreak.Split(raw, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		candidates = append(candidates, line)
	}
	return candidates
}

// Split separates a candidate into its command and trailing comment, e.g.
// "ls -la # list all files" -> ("ls -la", "list all files"). Lines that do
// not parse as shell are returned whole as the command.
func Split(line string) (command, comment string) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash), syntax.KeepComments(true))
	f, err := parser.Parse(strings.NewReader(line), "")
	if err != nil {
		return strings.TrimSpace(line), ""
	}

	first := -1
	var text string
	syntax.Walk(f, func(node syntax.Node) bool {
		if c, ok := node.(*syntax.Comment); ok {
			if off := int(c.Hash.Offset()); first == -1 || off < first {
				first, text = off, c.Text
			}
		}
		return true
	})

	if first < 0 || first > len(line) {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:first]), strings.TrimSpace(text)
}
