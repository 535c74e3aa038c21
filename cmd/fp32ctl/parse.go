package main

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// parseOperand accepts either a hex bit pattern ("0x3fa00000") or a decimal
// float literal ("1.25") and returns the binary32 bits.
func parseOperand(flag, s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		bits, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, newCmdError(flag, "not a valid hex bit pattern: "+s)
		}
		return uint32(bits), nil
	}

	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, newCmdError(flag, "not a valid hex pattern or float literal: "+s)
	}
	return float32Bits(float32(f)), nil
}

// parseOpcode maps the --op flag ("add" or "sub") to the controller's
// opcode bit.
func parseOpcode(s string) (sub bool, err error) {
	switch strings.ToLower(s) {
	case "add":
		return false, nil
	case "sub":
		return true, nil
	default:
		return false, newCmdError("op", `must be "add" or "sub", got `+s)
	}
}

// parseLocale maps the --locale flag to a golang.org/x/text/language.Tag,
// defaulting to the unspecified tag (which message.NewPrinter treats as a
// neutral formatting locale) on an empty string.
func parseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.Tag{}, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Tag{}, newCmdError("locale", "not a valid BCP 47 tag: "+s)
	}
	return tag, nil
}
