/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package binary

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// EncodeHexString encodes bytes to a lower case hex string.
func EncodeHexString(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHexString decodes a hex string. Whitespace anywhere in the input is ignored.
func DecodeHexString(s string) ([]byte, error) {
	b, err := hex.DecodeString(StripWhitespace(s))
	if err != nil {
		return nil, fmt.Errorf("decode hex string: %w", err)
	}

	return b, nil
}

// StripWhitespace removes all white space characters from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}
