package schema

import (
	"embed"

	"github.com/spf13/afero"
)

//go:embed request
var bundle embed.FS

// Bundled returns a read-only filesystem with the schemas shipped in this
// package.
func Bundled() afero.Fs {
	return afero.FromIOFS{FS: bundle}
}

// Dir returns a read-only filesystem rooted at an on-disk schema directory.
// The directory must contain the request/ tree.
func Dir(dir string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}
