package patternfilter

import (
	"fmt"
	"regexp"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/moderation/normalizer"
)

// Filter is the deterministic Layer-1 matcher. It is side-effect free and
// does no I/O; its whole purpose is to stop obviously bad content before any
// external-service latency or cost is paid.
type Filter struct {
	compiled []compiledGroup
}

type compiledGroup struct {
	category string
	severity moderation.Severity
	verbatim bool
	patterns []*regexp.Regexp
}

func NewFilter() *Filter {
	f := &Filter{}
	for _, g := range groups {
		cg := compiledGroup{category: g.category, severity: g.severity, verbatim: g.verbatim}
		for _, p := range g.patterns {
			cg.patterns = append(cg.patterns, regexp.MustCompile(p))
		}
		f.compiled = append(f.compiled, cg)
	}
	return f
}

// Check tests each category group in order against raw text and returns a
// blocking verdict for the first match. Word groups see the leet-normalized
// text; verbatim groups see the folded text so identifier shapes like
// "name@host" are not rewritten before their patterns run. A nil result
// means no group matched and the pipeline should continue to the semantic
// layer.
func (f *Filter) Check(text string) *moderation.Verdict {
	folded := normalizer.Fold(text)
	normalized := normalizer.Normalize(text)

	for _, g := range f.compiled {
		haystack := normalized
		if g.verbatim {
			haystack = folded
		}
		for _, re := range g.patterns {
			if re.MatchString(haystack) {
				return moderation.Block(
					g.category,
					g.severity,
					fmt.Sprintf("content matched a banned %s pattern", g.category),
				)
			}
		}
	}
	return nil
}
