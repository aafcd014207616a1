package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Formats an uint value into a fixed width binary string of n bits
func FormatUintBinary(value uint64, bits int) string {
	leadingZerosFormat := "%0" + fmt.Sprint(bits) + "s"
	return fmt.Sprintf(leadingZerosFormat, strconv.FormatUint(value, 2))
}

// Formats an uint value into an fixed width uppercase hex string of n digits
func FormatUintHex(value uint64, digits int) string {
	leadingZerosFormat := "0x%0" + fmt.Sprint(digits) + "s"
	return fmt.Sprintf(leadingZerosFormat, strings.ToUpper(strconv.FormatUint(value, 16)))
}

// Parses an unsigned integer literal in decimal, 0x hex, 0b binary or 0 octal notation
func ParseUint(literal string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(literal), 0, 64)
}

// Returns the identifier with all characters not valid in a C identifier replaced by underscores
func CIdentifier(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, name)
}
