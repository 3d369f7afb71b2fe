// Package all imports all supported release source implementations.
//
// Import this package for its side effects to register all ecosystems:
//
//	import (
//		"github.com/git-pkgs/spec0"
//		_ "github.com/git-pkgs/spec0/all"
//	)
//
//	// Now all ecosystems are available
//	ecosystems := spec0.SupportedEcosystems()
//	// ["conda", "github", "pypi"]
package all

import (
	_ "github.com/git-pkgs/spec0/internal/conda"
	_ "github.com/git-pkgs/spec0/internal/github"
	_ "github.com/git-pkgs/spec0/internal/pypi"
)
