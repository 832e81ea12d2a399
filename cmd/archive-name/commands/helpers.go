package commands

import "github.com/CeGenreDeChat/archive-name/pkg/debian"

// archiveFilename returns the .deb filename for spec, falling back to the
// brain-config package and "all" architecture for empty fields.
func archiveFilename(spec *debian.ArchiveSpec) string {
	name := spec.Package
	if name == "" {
		name = debian.DefaultPackageName
	}

	architecture := spec.Architecture
	if architecture == "" {
		architecture = debian.DefaultArchitecture
	}

	return debian.ArchiveFilename(name, spec.Version, architecture)
}
