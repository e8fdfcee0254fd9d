package keys

import "strings"

// SpeciesKey produces the canonical lookup key for a species name.
// Behavior: trims, lower-cases and replaces inner spaces with underscores so
// "Mr Mime", " mr mime " and "MR_MIME" resolve to the same entry.
func SpeciesKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_")
}
