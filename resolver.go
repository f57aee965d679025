package main

import (
	"context"
	"strings"
)

// TargetMode selects how the working set of articles is produced.
type TargetMode int

const (
	// AllDiscovered archives every article found on the listing page.
	AllDiscovered TargetMode = iota
	// QueryFiltered keeps discovered articles matching any query term.
	QueryFiltered
	// Explicit archives exactly the URLs the caller supplied.
	Explicit
)

// TargetSpec is the parsed invocation surface. Explicit URLs take precedence
// over query terms when both are present.
type TargetSpec struct {
	Mode  TargetMode
	URLs  []string
	Terms []string
}

// parseTargetSpec classifies command arguments: --url values and bare
// http(s)-prefixed tokens are explicit targets, every other token is a
// substring query term.
func parseTargetSpec(args, urlFlags []string) TargetSpec {
	spec := TargetSpec{}
	spec.URLs = append(spec.URLs, urlFlags...)

	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			spec.URLs = append(spec.URLs, arg)
		} else {
			spec.Terms = append(spec.Terms, arg)
		}
	}

	switch {
	case len(spec.URLs) > 0:
		spec.Mode = Explicit
	case len(spec.Terms) > 0:
		spec.Mode = QueryFiltered
	default:
		spec.Mode = AllDiscovered
	}
	return spec
}

// resolveTargets produces the ordered working set. Discovery only runs when
// the caller did not name URLs directly; explicit targets carry the sentinel
// hint so the title-based skip never suppresses them.
func resolveTargets(ctx context.Context, spec TargetSpec, discover func(context.Context) ([]ArticleRef, error)) ([]ArticleRef, error) {
	if spec.Mode == Explicit {
		refs := make([]ArticleRef, 0, len(spec.URLs))
		for _, u := range spec.URLs {
			refs = append(refs, ArticleRef{URL: u, HintTitle: URLTargetHint})
		}
		return refs, nil
	}

	refs, err := discover(ctx)
	if err != nil {
		return nil, err
	}
	if spec.Mode == AllDiscovered {
		return refs, nil
	}

	kept := make([]ArticleRef, 0, len(refs))
	for _, ref := range refs {
		if matchesAnyTerm(ref, spec.Terms) {
			kept = append(kept, ref)
		}
	}
	return kept, nil
}

// matchesAnyTerm is a case-sensitive substring OR over hint title and URL.
func matchesAnyTerm(ref ArticleRef, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(ref.HintTitle, term) || strings.Contains(ref.URL, term) {
			return true
		}
	}
	return false
}
