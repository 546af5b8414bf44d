// Package manifest describes the set of remote archives that make up a
// dataset release.
package manifest

import (
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/goccy/go-yaml"
)

// Manifest lists the archives to fetch. A manifest file is YAML:
//
//	archives:
//	  - https://mirror.example.com/images/train.zip
//	  - https://mirror.example.com/images/val.zip
type Manifest struct {
	Archives []string `yaml:"archives"`
}

// Default returns the canonical VizWiz archive set.
func Default() *Manifest {
	return &Manifest{
		Archives: []string{
			"https://vizwiz.cs.colorado.edu/VizWiz_final/images/train.zip",
			"https://vizwiz.cs.colorado.edu/VizWiz_final/images/val.zip",
			"https://vizwiz.cs.colorado.edu/VizWiz_final/images/test.zip",
			"https://vizwiz.cs.colorado.edu/VizWiz_final/vqa_data/Annotations.zip",
		},
	}
}

// Load reads a manifest file, for fetching from a mirror instead of the
// canonical URLs.
func Load(file string) (*Manifest, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(d, m); err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", file, err)
	}
	if len(m.Archives) == 0 {
		return nil, fmt.Errorf("manifest %q lists no archives", file)
	}
	for _, a := range m.Archives {
		if _, err := FileName(a); err != nil {
			return nil, fmt.Errorf("manifest %q: %w", file, err)
		}
	}
	return m, nil
}

// FileName returns the local file name an archive URL downloads to, the
// last element of the URL path.
func FileName(archiveURL string) (string, error) {
	u, err := url.Parse(archiveURL)
	if err != nil {
		return "", fmt.Errorf("bad archive url %q: %w", archiveURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("archive url %q has no file name", archiveURL)
	}
	return name, nil
}
