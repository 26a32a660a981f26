// Package activation issues device ids and checks the activation codes
// generated for them.
package activation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

const (
	devicePrefix = "DEV-"
	salt         = "RASED_APP_SECURE_2025_OMAN"
	codeLen      = 8
)

// NewDeviceID returns a fresh id of the form DEV-XXXXXXXX.
func NewDeviceID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return devicePrefix + strings.ToUpper(id[:codeLen])
}

// Code derives the activation code for deviceID, formatted XXXX-XXXX. An
// empty id has no code.
func Code(deviceID string) string {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return ""
	}
	units := utf16.Encode([]rune(deviceID))
	slices.Reverse(units)
	units = append(units, utf16.Encode([]rune(salt))...)
	return format(hash(units))
}

// Verify reports whether code activates deviceID. Case and surrounding
// whitespace are ignored.
func Verify(deviceID, code string) bool {
	want := Code(deviceID)
	return want != "" && strings.ToUpper(strings.TrimSpace(code)) == want
}

// hash is the 31-multiplier string hash over UTF-16 code units with 32-bit
// wraparound.
func hash(units []uint16) int32 {
	var h int32
	for _, c := range units {
		h = (h << 5) - h + int32(c)
	}
	return h
}

func format(h int32) string {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	s := fmt.Sprintf("%X", v)
	if len(s) < codeLen {
		s += strings.Repeat("X", codeLen-len(s))
	}
	s = s[:codeLen]
	return s[:4] + "-" + s[4:]
}
