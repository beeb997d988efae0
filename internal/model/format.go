package model

import (
	"fmt"
	"strings"
)

// Format identifies an institution-specific CSV export layout.
type Format string

const (
	FormatTD               Format = "td"
	FormatWealthsimpleCard Format = "wealthsimple-card"
	FormatWealthsimpleCash Format = "wealthsimple-cash"
	FormatAmex             Format = "amex"
	FormatScotiabank       Format = "scotiabank"
)

// Formats lists every supported format in detection order.
var Formats = []Format{
	FormatScotiabank,
	FormatWealthsimpleCard,
	FormatWealthsimpleCash,
	FormatAmex,
	FormatTD,
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}
