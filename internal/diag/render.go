package diag

import (
	"fmt"
	"strconv"
	"strings"

	"panther/internal/source"
)

// RenderLocation writes the source excerpt for loc: a gray "path:line:col"
// locator, the gray source line, and an underline colored by sev. The quoted
// line has its leading tabs and spaces stripped, with the underline column
// pulled left to match, so excerpts stay flush left regardless of indentation.
//
// Single-line spans are underlined with one caret per column. A multi-line
// span shows only its first physical line: a caret at the start column and
// tildes to the end of the visible text.
func RenderLocation(p *Printer, file *source.File, loc source.Location, sev Severity) {
	p.Gray(fmt.Sprintf("\t%s:%d:%d\n", file.Path, loc.LineStart, loc.ColStart))

	lineNumber := strconv.FormatUint(uint64(loc.LineStart), 10)

	// Find the start of the target line. Line breaks are counted the same
	// way the tokenizer counts them: \n, \r, and \r\n as a single break.
	text := file.Text
	cursor := 0
	for line := uint32(1); line < loc.LineStart && cursor < len(text); cursor++ {
		switch text[cursor] {
		case '\n':
			line++
		case '\r':
			line++
			if cursor+1 < len(text) && text[cursor+1] == '\n' {
				cursor++
			}
		}
	}

	var line strings.Builder
	pointCol := int(loc.ColStart)
	stripping := true
	for ; cursor < len(text) && text[cursor] != '\n' && text[cursor] != '\r'; cursor++ {
		if stripping && (text[cursor] == '\t' || text[cursor] == ' ') {
			pointCol--
			continue
		}
		stripping = false
		line.WriteByte(text[cursor])
	}
	if pointCol < 1 {
		// The span starts inside the stripped indentation.
		pointCol = 1
	}
	lineStr := line.String()

	p.Gray(fmt.Sprintf("\t%s | %s\n", lineNumber, lineStr))
	p.Gray(fmt.Sprintf("\t%s | ", strings.Repeat(" ", len(lineNumber))))

	var underline strings.Builder
	underline.WriteString(strings.Repeat(" ", pointCol-1))
	if loc.LineStart == loc.LineEnd {
		for col := loc.ColStart; col <= loc.ColEnd; col++ {
			underline.WriteByte('^')
		}
	} else {
		underline.WriteByte('^')
		for i := pointCol; i < len(lineStr); i++ {
			underline.WriteByte('~')
		}
	}
	underline.WriteByte('\n')

	switch sev {
	case SevFatal, SevError:
		p.Error(underline.String())
	case SevWarning:
		p.Warning(underline.String())
	default:
		p.Info(underline.String())
	}
}
