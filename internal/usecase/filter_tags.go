package usecase

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/forkops/tagsync/internal/domain"
)

// FilterTagsUseCase applies the configured eligibility filters to the
// discovered tag set. Pattern compilation happens at configuration load;
// an invalid pattern never reaches this point.

type FilterTagsUseCase struct {
	// Pattern is anchored as a whole-string match. Nil means match all.
	Pattern *regexp.Regexp
	// Constraint optionally restricts tags to a semver range. Tags that
	// do not parse as semver are excluded when a constraint is set.
	Constraint *semver.Constraints
}

// Execute returns the tags passing all filters, preserving order. The
// operation is idempotent: filtering an already-filtered set returns the
// same set.
func (uc *FilterTagsUseCase) Execute(tags []domain.Tag) []domain.Tag {
	var kept []domain.Tag
	for _, tag := range tags {
		if uc.Pattern != nil && !uc.Pattern.MatchString(tag.Name) {
			continue
		}
		if uc.Constraint != nil {
			version, err := tag.Semver()
			if err != nil || !uc.Constraint.Check(version) {
				continue
			}
		}
		kept = append(kept, tag)
	}
	return kept
}
