package lendon

import (
	"fmt"
	"unicode/utf8"
)

// Validate checks a result against its scenario's constraints.
// Characters are Unicode scalar values, so Vietnamese diacritics count once.
func Validate(result GenerationResult) ValidationOutcome {
	count := utf8.RuneCountInString(result.Text)
	limit, hasLimit := LimitFor(result.Scenario)

	return ValidationOutcome{
		CharacterCount: count,
		Limit:          limit,
		HasLimit:       hasLimit,
		IsOverLimit:    hasLimit && count > limit,
	}
}

// Remaining returns how many characters are left before the limit.
// It is negative when over the limit and 0 when there is no limit.
func (o ValidationOutcome) Remaining() int {
	if !o.HasLimit {
		return 0
	}
	return o.Limit - o.CharacterCount
}

// String renders the counter badge: "121 / 120" or "58 chars".
func (o ValidationOutcome) String() string {
	if o.HasLimit {
		return fmt.Sprintf("%d / %d", o.CharacterCount, o.Limit)
	}
	return fmt.Sprintf("%d chars", o.CharacterCount)
}
