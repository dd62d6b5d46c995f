package workflows

import (
	"context"
	"slices"
	"strings"

	"github.com/confect-dev/confect/internal/audit"
)

// LogOptions configures the audit log query.
type LogOptions struct {
	// Operations keeps only entries whose op is listed. Empty keeps all.
	Operations []string

	// Limit keeps the last Limit entries. Zero keeps all.
	Limit int

	// Reverse returns the most recent entry first.
	Reverse bool
}

// Log returns entries of the repository's audit log.
func Log(ctx context.Context, env *Env, opts LogOptions) ([]audit.Entry, error) {
	entries, err := audit.ReadEntries(env.Root)
	if err != nil {
		return nil, err
	}

	if len(opts.Operations) > 0 {
		entries = slices.DeleteFunc(entries, func(e audit.Entry) bool {
			return !slices.ContainsFunc(opts.Operations, func(op string) bool {
				return strings.EqualFold(strings.TrimSpace(op), e.Operation)
			})
		})
	}

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}

	if opts.Reverse {
		slices.Reverse(entries)
	}

	return entries, nil
}
