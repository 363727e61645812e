package learning

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// PathRefKind tags the shape of a client-supplied path reference.
// Resolution tries canonical ids first, then the legacy numeric / slug
// columns, so every reference shape maps to exactly one branch.
type PathRefKind int

const (
	RefCanonical     PathRefKind = iota // UUID-shaped canonical id
	RefLegacyNumeric                    // small integer from older mock datasets
	RefSlug                             // human-readable slug
)

// PathRef is a classified path reference
type PathRef struct {
	Kind   PathRefKind
	Raw    string
	Number int64 // populated for RefLegacyNumeric
}

// ClassifyPathRef maps a raw reference string onto its resolution branch
func ClassifyPathRef(ref string) PathRef {
	if _, err := uuid.Parse(ref); err == nil {
		return PathRef{Kind: RefCanonical, Raw: ref}
	}
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return PathRef{Kind: RefLegacyNumeric, Raw: ref, Number: n}
	}
	return PathRef{Kind: RefSlug, Raw: ref}
}

// PercentComplete computes the integer completion percentage for a
// completed/total lesson count, rounded to the nearest integer and
// clamped to [0, 100]. A path with no lessons reports 0.
func PercentComplete(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// TotalLessons sums lesson counts across all modules of a path
func TotalLessons(path *LearningPath) int64 {
	var total int64
	for _, mod := range path.Modules {
		total += int64(len(mod.Lessons))
	}
	return total
}

// MasterBadgeName returns the badge name awarded on full completion
func MasterBadgeName(pathTitle string) string {
	return pathTitle + " Master"
}
