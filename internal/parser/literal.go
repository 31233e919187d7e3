package parser

import "strconv"

// parseIntLiteral decodes a lexed integer literal's raw text (decimal,
// "0x..." hex, or "0b..." binary) into its numeric value.
func parseIntLiteral(raw string) (int64, error) {
	if len(raw) > 2 && (raw[0:2] == "0x" || raw[0:2] == "0X") {
		return strconv.ParseInt(raw[2:], 16, 64)
	}
	if len(raw) > 2 && (raw[0:2] == "0b" || raw[0:2] == "0B") {
		return strconv.ParseInt(raw[2:], 2, 64)
	}
	return strconv.ParseInt(raw, 10, 64)
}
