package page

import (
	"path"
	"strings"
)

// Label derives the text shown on a placeholder block: the image's alt text
// when present, otherwise a cleaned-up form of the filename from its source
// path (extension stripped, hyphens and underscores turned into spaces).
func Label(alt, src string) string {
	if trimmed := strings.TrimSpace(alt); trimmed != "" {
		return trimmed
	}

	name := src
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = path.Base(name)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")

	if name == "" || name == "." || name == "/" {
		return "image"
	}
	return name
}
