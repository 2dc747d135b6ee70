package common

import "strings"

// SourceExtension is the file extension of Eclipse source files.
const SourceExtension = "ecl"

// Path is a non-empty sequence of identifier components with an optional file
// extension.  It is used both as a logical namespace path (`std::io::print`)
// and as a file path (`src/main`).
type Path struct {
	// The components of the path.  This is never empty.
	Components []string

	// The file extension of the path without the leading dot.  This is empty
	// for namespace paths.
	Extension string
}

// NewPath creates a new path from its components.
func NewPath(components ...string) Path {
	return Path{Components: components}
}

// ParseFilePath converts a slash-separated file path into a Path.  The
// extension is split off the last component if present.
func ParseFilePath(filePath string) Path {
	components := strings.Split(strings.Trim(filePath, "/"), "/")

	last := components[len(components)-1]
	ext := ""
	if ndx := strings.LastIndexByte(last, '.'); ndx > 0 {
		ext = last[ndx+1:]
		components[len(components)-1] = last[:ndx]
	}

	return Path{Components: components, Extension: ext}
}

// EntryPath returns the path to the entry file of a project: `src/main.ecl`.
func EntryPath() Path {
	return Path{Components: []string{"src", "main"}, Extension: SourceExtension}
}

// String returns the namespace representation of the path: its components
// joined by `::`.
func (p Path) String() string {
	return strings.Join(p.Components, "::")
}

// FilePath returns the slash-separated file path including the extension.
func (p Path) FilePath() string {
	fp := strings.Join(p.Components, "/")
	if p.Extension != "" {
		fp += "." + p.Extension
	}

	return fp
}

// Key returns the extension-less file path: the key a module is stored under.
func (p Path) Key() string {
	return strings.Join(p.Components, "/")
}

// Last returns the last component of the path.
func (p Path) Last() string {
	return p.Components[len(p.Components)-1]
}

// Parent returns the path without its last component.  The extension is
// dropped.  The parent of a single-component path is itself.
func (p Path) Parent() Path {
	if len(p.Components) == 1 {
		return Path{Components: p.Components}
	}

	return Path{Components: append([]string(nil), p.Components[:len(p.Components)-1]...)}
}

// Join returns a new path with the given components appended.  The extension
// is dropped.
func (p Path) Join(components ...string) Path {
	joined := make([]string, 0, len(p.Components)+len(components))
	joined = append(joined, p.Components...)
	joined = append(joined, components...)

	return Path{Components: joined}
}

// WithExtension returns a copy of the path with the given extension.
func (p Path) WithExtension(ext string) Path {
	return Path{Components: p.Components, Extension: ext}
}

// WithoutExtension returns a copy of the path with no extension.
func (p Path) WithoutExtension() Path {
	return Path{Components: p.Components}
}

// Equals returns whether two paths have the same components and extension.
func (p Path) Equals(other Path) bool {
	if len(p.Components) != len(other.Components) || p.Extension != other.Extension {
		return false
	}

	for i, comp := range p.Components {
		if comp != other.Components[i] {
			return false
		}
	}

	return true
}
