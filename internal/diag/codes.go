package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedExpr    Code = 1004
	LexBadTagName          Code = 1005

	// Syntactic
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnclosedTag     Code = 2002
	SynMismatchedTag   Code = 2003
	SynBadAttribute    Code = 2004
	SynStrayEndTag     Code = 2005

	// Loader
	LoadInfo              Code = 3000
	LoadForbiddenPath     Code = 3001
	LoadReadFailed        Code = 3002
	LoadParseFailed       Code = 3003
	LoadRootExpected      Code = 3004
	LoadMissingSrc        Code = 3005
	LoadUnknownDirective  Code = 3006
	LoadTooManyInclusions Code = 3007
	LoadInvalidTagName    Code = 3008
	LoadMissingSlotName   Code = 3009
	LoadTooManyMacros     Code = 3010

	// Project / environment
	PrjInfo        Code = 5000
	PrjBadManifest Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:                "lexer note",
	LexUnknownChar:         "unknown character",
	LexUnterminatedString:  "unterminated attribute value",
	LexUnterminatedComment: "unterminated comment",
	LexUnterminatedExpr:    "unterminated expression island",
	LexBadTagName:          "malformed tag name",

	SynInfo:            "parser note",
	SynUnexpectedToken: "unexpected token",
	SynUnclosedTag:     "unclosed tag",
	SynMismatchedTag:   "mismatched closing tag",
	SynBadAttribute:    "malformed attribute",
	SynStrayEndTag:     "closing tag without an opening tag",

	LoadInfo:              "loader note",
	LoadForbiddenPath:     "forbidden pathname",
	LoadReadFailed:        "file read failed",
	LoadParseFailed:       "parse failed",
	LoadRootExpected:      "HTML tag expected",
	LoadMissingSrc:        "missing src attribute",
	LoadUnknownDirective:  "unknown directive",
	LoadTooManyInclusions: "too many nested inclusions",
	LoadInvalidTagName:    "invalid tag name",
	LoadMissingSlotName:   "missing slot name",
	LoadTooManyMacros:     "too many nested macros",

	PrjInfo:        "project note",
	PrjBadManifest: "malformed manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOAD%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
