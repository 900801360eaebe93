package project

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file a project is recognized by.
const ManifestName = "panther.toml"

// Color modes accepted by [build].color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NumThreadsAuto picks the thread count at run time (one worker per CPU,
// minus one for the submitting goroutine). Zero runs single-threaded.
const NumThreadsAuto = -1

// DefaultMaxErrors is the error budget applied when the manifest does not
// set one.
const DefaultMaxErrors uint32 = 20

// Manifest is the parsed panther.toml with defaults filled in.
type Manifest struct {
	Package PackageSection
	Build   BuildSection
}

// PackageSection is [package]: identity of the project.
type PackageSection struct {
	Name    string
	Version string
}

// BuildSection is [build]: session knobs the CLI reads before flags
// override them.
type BuildSection struct {
	NumThreads int
	MaxErrors  uint32
	Color      string
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrBuildValueInvalid indicates an out-of-range [build] value.
	ErrBuildValueInvalid = errors.New("invalid [build] value")
)

type manifestFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Build struct {
		NumThreads int    `toml:"num-threads"`
		MaxErrors  int64  `toml:"max-errors"`
		Color      string `toml:"color"`
	} `toml:"build"`
}

// Default returns the manifest used when no panther.toml exists.
func Default() Manifest {
	return Manifest{
		Package: PackageSection{Name: "main", Version: "0.1.0"},
		Build: BuildSection{
			NumThreads: NumThreadsAuto,
			MaxErrors:  DefaultMaxErrors,
			Color:      ColorAuto,
		},
	}
}

// Load parses and validates one panther.toml. Absent fields take their
// defaults; present-but-invalid fields are errors, not fallbacks, so a typo
// never silently reconfigures a build.
func Load(path string) (*Manifest, error) {
	var cfg manifestFile
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if !md.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !md.IsDefined("package", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}

	m := Default()
	m.Package.Name = name
	if md.IsDefined("package", "version") {
		m.Package.Version = strings.TrimSpace(cfg.Package.Version)
	}

	if md.IsDefined("build", "num-threads") {
		if cfg.Build.NumThreads < NumThreadsAuto {
			return nil, fmt.Errorf("%s: %w: num-threads = %d", path, ErrBuildValueInvalid, cfg.Build.NumThreads)
		}
		m.Build.NumThreads = cfg.Build.NumThreads
	}
	if md.IsDefined("build", "max-errors") {
		if cfg.Build.MaxErrors < 1 || cfg.Build.MaxErrors > math.MaxUint32 {
			return nil, fmt.Errorf("%s: %w: max-errors = %d", path, ErrBuildValueInvalid, cfg.Build.MaxErrors)
		}
		m.Build.MaxErrors = uint32(cfg.Build.MaxErrors)
	}
	if md.IsDefined("build", "color") {
		switch cfg.Build.Color {
		case ColorAuto, ColorAlways, ColorNever:
			m.Build.Color = cfg.Build.Color
		default:
			return nil, fmt.Errorf("%s: %w: color = %q", path, ErrBuildValueInvalid, cfg.Build.Color)
		}
	}

	return &m, nil
}

// Resolve finds and loads the manifest governing startDir. Without one, the
// defaults apply and found is false.
func Resolve(startDir string) (m *Manifest, found bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		def := Default()
		return &def, false, nil
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// StarterManifest renders the panther.toml that `panther init` writes.
// Omitted keys keep their defaults, so the file stays short.
func StarterManifest(name string) string {
	return fmt.Sprintf(`[package]
name = %q
version = "0.1.0"

[build]
max-errors = %d
color = %q
`, name, DefaultMaxErrors, ColorAuto)
}
