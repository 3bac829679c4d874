package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// FilenameAssigner turns resolved pages into output names.
type FilenameAssigner struct {
	prefix    string
	suffix    string
	separator rune
}

// NewFilenameAssigner creates an assigner. An empty suffix selects
// domain.DefaultSuffix; a leading dot on suffix is ignored.
func NewFilenameAssigner(prefix, suffix string, separator rune) *FilenameAssigner {
	suffix = strings.TrimPrefix(strings.TrimSpace(suffix), ".")
	if suffix == "" {
		suffix = domain.DefaultSuffix
	}
	return &FilenameAssigner{
		prefix:    prefix,
		suffix:    suffix,
		separator: separator,
	}
}

// Suffix returns the extension used for every name.
func (a *FilenameAssigner) Suffix() string {
	return a.suffix
}

// Assign names page. failures is the count of unresolved pages seen so far
// in the run; the updated count is returned and must be passed to the next call.
func (a *FilenameAssigner) Assign(page domain.Page, failures int) (string, int) {
	if !page.Resolved {
		failures++
		return domain.FailedNamePrefix + strconv.Itoa(failures) + "." + a.suffix, failures
	}

	id := sanitise(page.Composite(a.separator))
	return a.prefix + string(a.separator) + id + "." + a.suffix, failures
}

// sanitise drops characters that cannot appear in a file name on common
// filesystems. Whitespace is kept.
func sanitise(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, s)
}

// collisionGuard applies a collision policy to names within one run.
type collisionGuard struct {
	policy    domain.CollisionPolicy
	separator rune
	seen      map[string]int
}

func newCollisionGuard(policy domain.CollisionPolicy, separator rune) *collisionGuard {
	if !policy.IsValid() {
		policy = domain.CollisionOverwrite
	}
	return &collisionGuard{
		policy:    policy,
		separator: separator,
		seen:      make(map[string]int),
	}
}

// claim returns the name to write for a proposed name.
func (g *collisionGuard) claim(name string) (string, error) {
	n := g.seen[name]
	g.seen[name] = n + 1
	if n == 0 {
		return name, nil
	}

	switch g.policy {
	case domain.CollisionError:
		return "", fmt.Errorf("%w: %s", domain.ErrFilenameCollision, name)
	case domain.CollisionIncrement:
		stem, ext := splitExt(name)
		for i := n + 1; ; i++ {
			candidate := stem + string(g.separator) + strconv.Itoa(i) + ext
			if g.seen[candidate] == 0 {
				g.seen[candidate] = 1
				return candidate, nil
			}
		}
	default:
		return name, nil
	}
}

func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
