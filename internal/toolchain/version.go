package toolchain

import (
	"regexp"
	"strings"
)

// Match version pattern: v20.11.1, 10.2.4, v1.22.19
// We want just the numeric version: 20.11.1
var versionRegex = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// ParseVersion extracts the semantic version from a tool's --version output.
// node prints "v20.11.1", npm prints "10.2.4", yarn prints "1.22.19".
// Returns the trimmed raw output if no version pattern is found.
func ParseVersion(output string) string {
	matches := versionRegex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return strings.TrimSpace(output)
}
