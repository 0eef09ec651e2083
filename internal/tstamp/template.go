package tstamp

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
)

// NewTemplateMatcher builds a [Matcher] from a strftime-style template
// (e.g. "%Y-%m-%d %H:%M:%S"), as named in SPEC_FULL §6's "-t FMT" option.
// Go's reference-time layouts cannot express strftime directives, hence
// the dependency on a strftime engine rather than a hand-rolled
// translation.
func NewTemplateMatcher(template string) (Matcher, error) {
	layout, err := strftime.Layout(template)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp template %q: %w", template, err)
	}

	return func(s string, _ time.Time) (Instant, bool) {
		t, err := time.Parse(layout, s)
		if err != nil {
			return Instant{}, false
		}

		return Instant{t: t, precision: precisionFromTemplate(template)}, true
	}, nil
}

// precisionFromTemplate reports the subsecond precision implied by a
// strftime template's "%N" fractional-second directives ("%3N", "%6N",
// "%9N"), defaulting to second precision when absent.
func precisionFromTemplate(template string) Precision {
	switch {
	case containsDirective(template, "%9N"), containsDirective(template, "%N"):
		return PrecisionNano
	case containsDirective(template, "%6N"):
		return PrecisionMicro
	case containsDirective(template, "%3N"):
		return PrecisionMilli
	default:
		return PrecisionSecond
	}
}

func containsDirective(template, directive string) bool {
	for i := 0; i+len(directive) <= len(template); i++ {
		if template[i:i+len(directive)] == directive {
			return true
		}
	}

	return false
}

// Format renders an [Instant] in loc with a strftime template, truncating
// subsecond precision to match the template's "%3N"/"%6N"/"%9N" directive
// if present (SPEC_FULL §4.6). Display formatting never re-parses i.
func Format(i Instant, loc *time.Location, template string) (string, error) {
	t := i.t
	if loc != nil {
		t = t.In(loc)
	}

	out, err := strftime.Format(template, t)
	if err != nil {
		return "", fmt.Errorf("formatting timestamp with template %q: %w", template, err)
	}

	return out, nil
}
