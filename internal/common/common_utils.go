package common

import (
	"fmt"
	"strings"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// NormalizeCode trims surrounding whitespace and upper-cases an airport code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// normalizeCodePtr applies NormalizeCode and maps blank codes to nil.
func normalizeCodePtr(code *string) *string {
	if code == nil {
		return nil
	}
	normalized := NormalizeCode(*code)
	if normalized == "" {
		return nil
	}
	return &normalized
}
