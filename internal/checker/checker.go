package checker

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/issue"
	"github.com/exprlang/typecheck/internal/types"
)

// CheckOptions is the ambient configuration surface for one Check call.
// It carries the single Open Question spec §9 leaves undecided
// (map-key-type enforcement) as an explicit toggle rather than a
// hardcoded choice, plus a defensive cap on issue accumulation.
type CheckOptions struct {
	// StrictMapKeys promotes the "unsupported map key type" diagnostic
	// from a warning to an error. Off by default, matching the
	// established behaviour spec §9 describes.
	StrictMapKeys bool

	// MaxIssues caps how many issues a single check reports before giving
	// up on further diagnostics (0 means unlimited). It does not affect
	// error latching: a single error-severity issue still suppresses the
	// output AST regardless of MaxIssues.
	MaxIssues int

	// Debug dumps the Resolver's side tables with go-spew before
	// rewriting, for diagnosing a checker bug rather than a checked
	// program's bug.
	Debug bool
}

// Result is spec §6's ValidationResult: always the accumulated issues,
// plus — only when none of them is error-severity — the decorated output
// AST's reference and type maps.
type Result struct {
	Issues     []*issue.Issue
	AST        ast.Expr
	References map[int64]*Reference
	Types      map[int64]*types.FlattenedType
	IsChecked  bool
}

// Check type-checks root against e and returns either a checked AST or a
// list of diagnostic issues (spec §2). The returned error is non-nil only
// for the Fatal channel of spec §7 — an internal invariant violation, not
// anything a checked program's author could have written differently.
func Check(root ast.Expr, src *ast.SourceInfo, e *env.TypeCheckEnv, opts CheckOptions) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, errors.Errorf("internal checker invariant violated: %v", rec)
		}
	}()

	r := newResolver(e, src, opts)
	r.run(root)

	if opts.Debug {
		spew.Dump(map[string]any{
			"types":       r.types,
			"attributes":  r.attributes,
			"functions":   r.functions,
			"structTypes": r.structTypes,
			"issues":      r.issues.All(),
		})
	}

	if r.issues.HasErrors() {
		return &Result{Issues: r.issues.All()}, nil
	}

	rw := newRewriter(r)
	refs, flat := rw.Rewrite(root)
	return &Result{
		Issues:     r.issues.All(),
		AST:        root,
		References: refs,
		Types:      flat,
		IsChecked:  true,
	}, nil
}
