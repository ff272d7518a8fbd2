package auth

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RouteClass is the static classification assigned to a URL pattern.
type RouteClass string

const (
	// Public routes proceed regardless of identity; they are reachable by
	// design (login, registration, catalog reads).
	Public RouteClass = "public"
	// IdentityRequired routes reject anonymous requests before the handler runs.
	IdentityRequired RouteClass = "identity_required"
	// AlwaysPermitted is the default-open catch-all for everything not
	// explicitly declared.
	AlwaysPermitted RouteClass = "always_permitted"
)

type policyRule struct {
	prefix string
	class  RouteClass
}

// RoutePolicy maps request paths to a RouteClass. Rules are declared once at
// startup and never mutated afterwards; classification picks the longest
// declared prefix that matches the path.
type RoutePolicy struct {
	rules []policyRule
}

// NewRoutePolicy returns an empty, default-open policy.
func NewRoutePolicy() *RoutePolicy {
	return &RoutePolicy{}
}

// Declare registers a pattern with a classification. Patterns are path
// prefixes; a trailing "/*" or "/**" is accepted and stripped.
func (p *RoutePolicy) Declare(pattern string, class RouteClass) *RoutePolicy {
	prefix := strings.TrimSuffix(strings.TrimSuffix(pattern, "/**"), "/*")
	if prefix == "" {
		prefix = "/"
	}

	p.rules = append(p.rules, policyRule{prefix: prefix, class: class})

	// Longest prefix first so the most specific declaration wins.
	sort.SliceStable(p.rules, func(i, j int) bool {
		return len(p.rules[i].prefix) > len(p.rules[j].prefix)
	})

	return p
}

// Classify returns the class of the longest matching declared prefix, or
// AlwaysPermitted when nothing matches.
func (p *RoutePolicy) Classify(path string) RouteClass {
	for _, rule := range p.rules {
		if matchesPrefix(path, rule.prefix) {
			return rule.class
		}
	}
	return AlwaysPermitted
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	// "/api/admin" matches "/api/admin" and "/api/admin/orders",
	// not "/api/administrators".
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Enforce returns the policy-enforcement middleware. It runs after
// TokenGuard: IdentityRequired paths without a resolved subject are rejected
// with 401 before any handler is invoked; Public and AlwaysPermitted paths
// continue untouched.
func (p *RoutePolicy) Enforce(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p.Classify(c.Path()) != IdentityRequired {
			return c.Next()
		}

		if _, ok := SubjectFromFiber(c, contextKey); !ok {
			return ErrUnauthorized
		}

		return c.Next()
	}
}
