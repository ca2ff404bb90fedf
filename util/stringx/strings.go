package stringx

import "strings"

// CutFromLeft is the same as strings.Cut. legacy.go uses it to split the
// extensions.VRM.version string into its major and minor components.
func CutFromLeft(s, sep string) (before, after string, found bool) {
	return strings.Cut(s, sep)
}
