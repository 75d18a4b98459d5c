package pack

import "strings"

// Reserved container paths the library uses for its own metadata. Never exposed through normal
// enumeration and never a valid insert/move destination.
const (
	ReservedNotes         = "notes.rpfm_reserved"
	ReservedSettings      = "settings.rpfm_reserved"
	ReservedExtraPackfile = "extra_packfile.rpfm_reserved"
)

var reservedPaths = map[string]bool{
	ReservedNotes:         true,
	ReservedSettings:      true,
	ReservedExtraPackfile: true,
}

// IsReserved reports whether path (case-insensitively) names one of the
// Pack's own reserved metadata files.
func IsReserved(path string) bool {
	return reservedPaths[strings.ToLower(path)]
}
