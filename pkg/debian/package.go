package debian

import (
	"fmt"
	"strings"
)

// Artifact naming defaults.
const (
	DefaultPackageName  = "brain-config"
	DefaultArchitecture = "all"
	DebExtension        = ".deb"
)

// ArchiveSpec names a built binary package artifact.
type ArchiveSpec struct {
	Package      string
	Version      string
	Architecture string
}

// NewArchiveSpec returns a spec for the brain-config package at version.
func NewArchiveSpec(version string) *ArchiveSpec {
	return &ArchiveSpec{
		Package:      DefaultPackageName,
		Version:      version,
		Architecture: DefaultArchitecture,
	}
}

// Filename returns the conventional artifact filename for the spec.
func (s *ArchiveSpec) Filename() string {
	return ArchiveFilename(s.Package, s.Version, s.Architecture)
}

func (s *ArchiveSpec) String() string {
	return fmt.Sprintf("%s (%s) [%s]", s.Package, s.Version, s.Architecture)
}

// ArchiveFilename formats <name>_<version>_<architecture>.deb.
func ArchiveFilename(name, version, architecture string) string {
	var sb strings.Builder
	sb.Grow(len(name) + len(version) + len(architecture) + len(DebExtension) + 2)
	sb.WriteString(name)
	sb.WriteString("_")
	sb.WriteString(version)
	sb.WriteString("_")
	sb.WriteString(architecture)
	sb.WriteString(DebExtension)
	return sb.String()
}
