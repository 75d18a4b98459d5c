package pack

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/twtools/packlib/errs"
)

// terryMapPath is the map-assembly-kit folder Terry (the in-house map
// editor) exports siege battle maps under.
const terryMapPath = "terrain/tiles/battle/_assembly_kit"

const defaultBmdData = "bmd_data.bin"

var (
	fortPerimeterHint = []byte("AIH_FORT_PERIMETER")
	defensiveHillHint = []byte("AIH_DEFENSIVE_HILL")
	siegeAreaNodeHint = []byte("AIH_SIEGE_AREA_NODE")
)

// SiegeAIPatchResult reports what PatchSiegeAI did.
type SiegeAIPatchResult struct {
	FilesPatched int
	FilesDeleted []string
	// MultipleDefensiveHillHints is true when a patched file still
	// contained an AIH_DEFENSIVE_HILL marker after the first was replaced
	// (it held more than one); only the first occurrence is ever patched.
	MultipleDefensiveHillHints bool
}

// PatchSiegeAI walks the map-assembly-kit folder's bmd_data.bin and
// catchment_*.bin files, replacing the first AIH_DEFENSIVE_HILL marker with
// AIH_FORT_PERIMETER in any file that also carries an AIH_SIEGE_AREA_NODE
// marker, so the game's SiegeAI pathing recognizes the map's fort
// perimeter. Leftover .xml artifacts Terry leaves behind in the same
// folder are deleted. Returns errs.ErrSiegeAIEmptyPack for an empty Pack
// and errs.ErrSiegeAINoPatchableFiles when nothing needed patching or
// deleting.
func (p *Pack) PatchSiegeAI() (SiegeAIPatchResult, error) {
	var result SiegeAIPatchResult

	if len(p.order) == 0 {
		return result, errs.ErrSiegeAIEmptyPack
	}

	encrypted := p.flags.Has(FlagEncryptedData)
	var toDelete []string

	for _, rec := range p.FilesByFolder(terryMapPath) {
		path := rec.Path()
		name := path
		if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
			name = path[idx+1:]
		}

		switch {
		case name == defaultBmdData || (strings.HasPrefix(name, "catchment_") && strings.HasSuffix(name, ".bin")):
			data, err := rec.RawBytes(encrypted)
			if err != nil {
				return result, err
			}
			if !bytes.Contains(data, siegeAreaNodeHint) {
				continue
			}
			if idx := bytes.Index(data, defensiveHillHint); idx >= 0 {
				patched := append([]byte(nil), data[:idx]...)
				patched = append(patched, fortPerimeterHint...)
				patched = append(patched, data[idx+len(defensiveHillHint):]...)
				rec.SetRawBytes(patched)
				result.FilesPatched++
				data = patched
			}
			if bytes.Contains(data, defensiveHillHint) {
				result.MultipleDefensiveHillHints = true
			}

		case strings.HasSuffix(strings.ToLower(name), ".xml"):
			toDelete = append(toDelete, path)
		}
	}

	for _, path := range toDelete {
		if err := p.Remove(path); err != nil {
			return result, err
		}
	}
	result.FilesDeleted = toDelete

	if result.FilesPatched == 0 && len(result.FilesDeleted) == 0 {
		return result, errs.ErrSiegeAINoPatchableFiles
	}
	return result, nil
}

// Summary renders the same human-readable report the map-patching tool
// surfaces to a mod author after calling PatchSiegeAI.
func (r SiegeAIPatchResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d files patched.\n", r.FilesPatched)
	if len(r.FilesDeleted) == 0 {
		b.WriteString("No file suitable for deleting has been found.")
	} else {
		fmt.Fprintf(&b, "%d files deleted.", len(r.FilesDeleted))
	}
	if r.MultipleDefensiveHillHints {
		b.WriteString("\n\nWARNING: multiple AIH_DEFENSIVE_HILL markers were found in a patched file; " +
			"only the first was patched. Delete the extras or SiegeAI pathing will misbehave.")
	}
	return b.String()
}
