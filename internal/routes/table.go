package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrInvalidPattern is returned for malformed route patterns.
	ErrInvalidPattern = errors.New("invalid route pattern")
	// ErrDuplicateRoute is returned when two patterns accept the same paths.
	ErrDuplicateRoute = errors.New("duplicate route")
	// ErrNilView is returned when a route has no view.
	ErrNilView = errors.New("route has no view")
)

// Route binds a path pattern to a view.
type Route struct {
	Path string
	View View
}

// Match is the result of resolving a path against the table.
type Match struct {
	Route  Route
	Params Params
}

type segment struct {
	literal string
	param   string
}

type compiledRoute struct {
	route    Route
	segments []segment
	literals int
}

// Table is an immutable set of compiled routes.
type Table struct {
	routes []compiledRoute
}

// NewTable compiles the given routes, keeping their order.
func NewTable(routes ...Route) (*Table, error) {
	compiled := make([]compiledRoute, 0, len(routes))
	shapes := make(map[string]string, len(routes))

	for _, r := range routes {
		if r.View == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilView, r.Path)
		}
		segments, err := compile(r.Path)
		if err != nil {
			return nil, err
		}

		shape := shapeOf(segments)
		if prev, ok := shapes[shape]; ok {
			return nil, fmt.Errorf("%w: %s conflicts with %s", ErrDuplicateRoute, r.Path, prev)
		}
		shapes[shape] = r.Path

		literals := 0
		for _, s := range segments {
			if s.param == "" {
				literals++
			}
		}
		compiled = append(compiled, compiledRoute{route: r, segments: segments, literals: literals})
	}

	return &Table{routes: compiled}, nil
}

// Routes returns the declared routes in order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.route
	}
	return out
}

// Match resolves path to the most specific route.
func (t *Table) Match(path string) (Match, bool) {
	parts, ok := splitPath(path)
	if !ok {
		return Match{}, false
	}

	var (
		best   *compiledRoute
		params Params
	)
	for i := range t.routes {
		candidate := &t.routes[i]
		if best != nil && candidate.literals <= best.literals {
			continue
		}
		bound, ok := candidate.bind(parts)
		if !ok {
			continue
		}
		best = candidate
		params = bound
	}

	if best == nil {
		return Match{}, false
	}
	return Match{Route: best.route, Params: params}, true
}

func (c *compiledRoute) bind(parts []string) (Params, bool) {
	if len(parts) != len(c.segments) {
		return nil, false
	}

	params := Params{}
	for i, s := range c.segments {
		part := parts[i]
		if s.param == "" {
			if part != s.literal {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		value, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		params[s.param] = value
	}
	return params, true
}

func compile(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern)
	}
	if pattern == "/" {
		return nil, nil
	}

	raw := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	segments := make([]segment, 0, len(raw))
	seen := make(map[string]struct{})
	for _, part := range raw {
		if part == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, pattern)
		}
		if !strings.HasPrefix(part, ":") {
			segments = append(segments, segment{literal: part})
			continue
		}
		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, pattern)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q repeats parameter %s", ErrInvalidPattern, pattern, name)
		}
		seen[name] = struct{}{}
		segments = append(segments, segment{param: name})
	}
	return segments, nil
}

// shapeOf renders segments with parameter names erased, so /a/:x and /a/:y
// compare equal.
func shapeOf(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		if s.param != "" {
			b.WriteByte(':')
			continue
		}
		b.WriteString(s.literal)
	}
	return b.String()
}

// splitPath breaks an absolute request path into segments. One trailing slash
// is tolerated; the root path yields no segments.
func splitPath(path string) ([]string, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil, true
	}
	trimmed = strings.TrimSuffix(trimmed, "/")
	return strings.Split(trimmed, "/"), true
}
