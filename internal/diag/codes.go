package diag

import (
	"fmt"
)

// Code identifies a diagnostic condition. Codes are grouped by thousand so the
// rendered ID carries the producing subsystem.
type Code uint16

const (
	// Session / file handling
	MiscUnknown          Code = 1000
	MiscFileDoesNotExist Code = 1001
	MiscLoadFileFailed   Code = 1002
	MiscMaxErrorsReached Code = 1003

	// Lexical
	LexUnknownChar              Code = 2001
	LexUnterminatedString       Code = 2002
	LexInvalidEscape            Code = 2003
	LexMalformedNumber          Code = 2004
	LexUnterminatedBlockComment Code = 2005
)

var (
	codeDescription = map[Code]string{
		MiscUnknown:                 "Unknown error",
		MiscFileDoesNotExist:        "File does not exist",
		MiscLoadFileFailed:          "Failed to load file",
		MiscMaxErrorsReached:        "Maximum number of errors reached",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexInvalidEscape:            "Invalid escape sequence",
		LexMalformedNumber:          "Malformed number literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("MISC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LEX%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[MiscUnknown]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
