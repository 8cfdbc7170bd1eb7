package lexer

// Tag and attribute names: start with a letter or the directive prefix `:`,
// continue with letters, digits, `-`, `_`, `.`, `:`. Dashes matter — custom
// element (macro) names are required to contain one.
func isNameStartByte(b byte) bool {
	return b == ':' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isNameStartByte(b) || b == '-' || b == '_' || b == '.' || (b >= '0' && b <= '9')
}
