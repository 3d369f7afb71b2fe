package core

import (
	"github.com/git-pkgs/spec0/client"
)

// ErrNotFound is returned when a package is not found.
var ErrNotFound = client.ErrNotFound

// Error aliases so source implementations depend on core alone.
type (
	HTTPError      = client.HTTPError
	NotFoundError  = client.NotFoundError
	RateLimitError = client.RateLimitError
)
