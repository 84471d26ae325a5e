package mqmods

// Exit codes.
// Any failure, including CLI usage errors and recovered panics, exits with -1.
// Parameter file template generation counts as success.
const (
	ExitSuccess = 0
	ExitFailure = -1
)

const (
	// NewFileSuffix is appended to the input name for the patched output.
	NewFileSuffix = ".new"

	// BackupFileSuffix is appended to the input name when the original is
	// moved aside. An existing backup disables the swap entirely.
	BackupFileSuffix = ".old"

	// MaxDisplayPathLength is the width used when compacting long paths
	// in status messages.
	MaxDisplayPathLength = 100

	// EnvPrefix prefixes the environment variables read for option defaults.
	EnvPrefix = "MQMODS_"
)

// DefaultRestrictedMods lists the modifications expected in <restrictMods>.
// Anything else is considered during protein quantification and is flagged.
var DefaultRestrictedMods = []string{
	"Oxidation (M)",
	"Acetyl (Protein N-term)",
}

// IsDefaultRestrictedMod reports whether name exactly matches one of
// DefaultRestrictedMods.
func IsDefaultRestrictedMod(name string) bool {
	for _, mod := range DefaultRestrictedMods {
		if name == mod {
			return true
		}
	}
	return false
}

// CompactPath shortens path to at most maxLength characters by replacing the
// middle with "...", keeping the file name intact when possible.
// Lengths are counted in runes, so multi-byte characters are never split.
func CompactPath(path string, maxLength int) string {
	runes := []rune(path)
	if maxLength <= 0 || len(runes) <= maxLength {
		return path
	}
	const ellipsis = "..."
	if maxLength <= len(ellipsis) {
		return string(runes[len(runes)-maxLength:])
	}
	keep := maxLength - len(ellipsis)
	head := keep / 3
	tail := keep - head
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
