package trash

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/babarot/rmtrash/internal/fs"
)

// NextName returns the first name derived from base that is free in trashDir.
// base itself is tried first, then "stem [v1].ext", "stem [v2].ext" and so on.
//
// The check is not atomic: two processes trashing the same name at the same
// time can both pick the same candidate.
func NextName(fsys fs.FS, trashDir, base string) string {
	candidate := base
	for n := 1; occupied(fsys, filepath.Join(trashDir, candidate)); n++ {
		candidate = VersionedName(base, n)
	}
	return candidate
}

// VersionedName inserts the "[vN]" marker before the extension of name, or
// appends it when name has no extension.
func VersionedName(name string, n int) string {
	stem, ext := splitExt(name)
	return fmt.Sprintf("%s [v%d]%s", stem, n, ext)
}

// splitExt splits name at its final dot. A dot in the first position does not
// start an extension, so ".gitignore" has none.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

func occupied(fsys fs.FS, path string) bool {
	return fsys.Exists(path) || fsys.IsSymlink(path)
}
