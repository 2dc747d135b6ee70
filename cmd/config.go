package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/pelletier/go-toml"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "eclipse.toml"

// ProjectConfig is the configuration of a project as it is encoded in its
// configuration file.
type ProjectConfig struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`

	Editor struct {
		// The number of columns a tab occupies in displayed source text.
		TabSize int `toml:"tab-size"`
	} `toml:"editor"`

	Build struct {
		// The C compiler used to compile and link the generated LLVM IR.
		CC string `toml:"cc"`

		// The build directory relative to the project root.
		Output string `toml:"output"`

		// Extra flags passed to the C compiler.
		Flags []string `toml:"flags"`

		// Flags passed to the C compiler in addition to `Flags` for release
		// builds.
		ReleaseFlags []string `toml:"release-flags"`
	} `toml:"build"`
}

// Default configuration values.
const (
	DefaultCC         = "clang"
	DefaultOutputDir  = "build"
	DefaultExecutable = "main"
)

// LoadProjectConfig loads the configuration of the project rooted at the
// given directory.  A missing configuration file yields the default
// configuration.
func LoadProjectConfig(rootPath string) (*ProjectConfig, error) {
	config := &ProjectConfig{}

	buff, err := os.ReadFile(filepath.Join(rootPath, ConfigFileName))
	if err == nil {
		if err := toml.Unmarshal(buff, config); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", ConfigFileName, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s: %w", ConfigFileName, err)
	}

	config.applyDefaults()

	if config.Editor.TabSize < 0 {
		return nil, fmt.Errorf("invalid %s: `editor.tab-size` must not be negative", ConfigFileName)
	}

	return config, nil
}

// applyDefaults fills in every field left unspecified.
func (pc *ProjectConfig) applyDefaults() {
	if pc.Editor.TabSize == 0 {
		pc.Editor.TabSize = common.DefaultTabSize
	}

	if pc.Build.CC == "" {
		pc.Build.CC = DefaultCC
	}

	if pc.Build.Output == "" {
		pc.Build.Output = DefaultOutputDir
	}

	if pc.Build.ReleaseFlags == nil {
		pc.Build.ReleaseFlags = []string{"-O2"}
	}
}

// ExecutableName returns the file name of the executable the project builds.
func (pc *ProjectConfig) ExecutableName(goos string) string {
	name := pc.Project.Name
	if name == "" {
		name = DefaultExecutable
	}

	if goos == "windows" {
		name += ".exe"
	}

	return name
}

// CCFlags returns the flags passed to the C compiler.
func (pc *ProjectConfig) CCFlags(release bool) []string {
	flags := append([]string(nil), pc.Build.Flags...)
	if release {
		flags = append(flags, pc.Build.ReleaseFlags...)
	}

	return flags
}
