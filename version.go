package tess

// Version information
const (
	// Version is the current version of the library
	Version = "1.0.1"

	// VersionMajor is the major version
	VersionMajor = 1

	// VersionMinor is the minor version
	VersionMinor = 0

	// VersionPatch is the patch version
	VersionPatch = 1
)

// PackedVersion returns the version as major<<24 | minor<<16 | patch.
func PackedVersion() uint32 {
	return VersionMajor<<24 | VersionMinor<<16 | VersionPatch
}
