package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/bankbot.txt
var systemRaw string

// System returns the trimmed system prompt for the banking resolver. The
// embed is compile-time, so this is safe to call concurrently.
func System() string {
	return strings.TrimSpace(systemRaw)
}
