// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package mask

import (
	"strings"
	"unicode/utf8"
)

// Password hides all but the first and last characters of s.
func Password(s string) string {
	n := utf8.RuneCountInString(s)
	if n < 3 {
		return "**" // too short, we can't mask anything
	}
	// turn 'password' into 'p******d'
	runes := []rune(s)
	return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
}
