// Package token defines the token kinds produced by the markup lexer.
package token
