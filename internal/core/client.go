package core

import (
	"github.com/git-pkgs/spec0/client"
)

// Type aliases so source implementations depend on core alone.
type (
	Client = client.Client
	Option = client.Option
)

// Function aliases so source implementations depend on core alone.
var (
	DefaultClient  = client.DefaultClient
	NewClient      = client.NewClient
	WithTimeout    = client.WithTimeout
	WithMaxRetries = client.WithMaxRetries
)
