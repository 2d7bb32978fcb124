// Package paths centralizes filesystem path handling for user-supplied
// locations: the database file, the log file, and the config file all accept
// "~" shorthand.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser expands a leading "~" or "~/" to the current user's home
// directory. Paths without the prefix come back unchanged, as does any path
// when the home directory cannot be determined.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
