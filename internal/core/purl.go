package core

import (
	"github.com/git-pkgs/purl"
)

// NewFromPURL creates a release source from a Package URL and returns the
// package name in the form the source expects:
//
//	pkg:pypi/numpy                      -> pypi source, "numpy"
//	pkg:conda/bioconda/samtools         -> conda source, "bioconda/samtools"
//	pkg:github/scientific-python/spec0  -> github source, "scientific-python/spec0"
//
// A version component in the PURL is ignored; support evaluation always
// works on the whole release history.
func NewFromPURL(purlStr string, client *Client) (Source, string, error) {
	p, err := purl.Parse(purlStr)
	if err != nil {
		return nil, "", err
	}

	src, err := New(p.Type, "", client)
	if err != nil {
		return nil, "", err
	}

	return src, purlName(p), nil
}

// purlName rebuilds the package name a source expects. Conda PURLs carry
// the channel as namespace, GitHub PURLs the repository owner.
func purlName(p *purl.PURL) string {
	if p.Namespace == "" {
		return p.Name
	}
	return p.Namespace + "/" + p.Name
}
