package automaton

import (
	"reflect"
	"testing"
)

// buildRouter is a small test harness wiring Graph, AddPattern and Build
// together the way router.Router does, without pulling in the routex
// package.
type buildRouter struct {
	graph     *Graph
	terminals []*Terminal
	compact   *Compact
}

func newBuildRouter() *buildRouter {
	return &buildRouter{graph: NewGraph()}
}

func (b *buildRouter) add(t *testing.T, pattern string) {
	t.Helper()
	idx := len(b.terminals)
	names, err := b.graph.AddPattern(pattern, idx)
	if err != nil {
		t.Fatalf("AddPattern(%q): %v", pattern, err)
	}
	b.terminals = append(b.terminals, &Terminal{Pattern: pattern, Names: names})
}

func (b *buildRouter) rebuild() {
	b.compact = Build(b.graph, b.terminals)
}

// match returns the patterns that matched path, in visitor order, alongside
// each one's captures.
func (b *buildRouter) match(path string) []string {
	var got []string
	b.compact.Match([]byte(path), b.terminals, func(terminal int, captures map[string]string) bool {
		got = append(got, b.terminals[terminal].Pattern)
		return false
	})
	return got
}

func (b *buildRouter) matchCaptures(path string) (string, map[string]string) {
	var pattern string
	var captures map[string]string
	b.compact.Match([]byte(path), b.terminals, func(terminal int, c map[string]string) bool {
		pattern = b.terminals[terminal].Pattern
		captures = c
		return true
	})
	return pattern, captures
}

func TestMatch_LiteralAndPlaceholderScenario(t *testing.T) {
	// A="/test", B="/a/:test", C="/a/:test/"
	b := newBuildRouter()
	b.add(t, "/test")
	b.add(t, "/a/:test")
	b.add(t, "/a/:test/")
	b.rebuild()

	tests := []struct {
		path     string
		want     []string
		captures map[string]string
	}{
		{"/", nil, nil},
		{"/test", []string{"/test"}, map[string]string{}},
		{"/a/", nil, nil},
		{"/a/x", []string{"/a/:test"}, map[string]string{"test": "x"}},
		{"/a/y/", []string{"/a/:test/"}, map[string]string{"test": "y"}},
		{"/a/bc", []string{"/a/:test"}, map[string]string{"test": "bc"}},
	}

	for _, tt := range tests {
		got := b.match(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("match(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		if len(got) == 1 {
			_, captures := b.matchCaptures(tt.path)
			if !reflect.DeepEqual(captures, tt.captures) {
				t.Errorf("match(%q) captures = %v, want %v", tt.path, captures, tt.captures)
			}
		}
	}
}

func TestMatch_OverlappingPlaceholders(t *testing.T) {
	// P1=":v1/:v2", P2="a/:v3", P3=":v4/b"
	b := newBuildRouter()
	b.add(t, ":v1/:v2")
	b.add(t, "a/:v3")
	b.add(t, ":v4/b")
	b.rebuild()

	tests := []struct {
		path string
		want []string
	}{
		{"a", nil},
		{"a/a", []string{":v1/:v2", "a/:v3"}},
		{"a/b", []string{":v1/:v2", "a/:v3", ":v4/b"}},
		{"ab/bc", []string{":v1/:v2"}},
	}

	for _, tt := range tests {
		got := b.match(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatch_WildcardScenario(t *testing.T) {
	b := newBuildRouter()
	b.add(t, "ab")
	b.add(t, "a*")
	b.rebuild()

	tests := []struct {
		path string
		want []string
	}{
		{"a", []string{"a*"}},
		{"ab", []string{"ab", "a*"}},
		{"abc", []string{"a*"}},
	}

	for _, tt := range tests {
		got := b.match(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatch_WildcardMatchesEmptySuffix(t *testing.T) {
	b := newBuildRouter()
	b.add(t, "foo/*")
	b.rebuild()

	for _, path := range []string{"foo/", "foo/x/y/z"} {
		got := b.match(path)
		if !reflect.DeepEqual(got, []string{"foo/*"}) {
			t.Errorf("match(%q) = %v, want [foo/*]", path, got)
		}
	}
	if got := b.match("foo"); got != nil {
		t.Errorf("match(%q) = %v, want no match", "foo", got)
	}
}

func TestMatch_CapturesContainNoSlash(t *testing.T) {
	b := newBuildRouter()
	b.add(t, "/:a/:b/:c")
	b.rebuild()

	_, captures := b.matchCaptures("/1/22/333")
	want := map[string]string{"a": "1", "b": "22", "c": "333"}
	if !reflect.DeepEqual(captures, want) {
		t.Errorf("captures = %v, want %v", captures, want)
	}
	for _, v := range captures {
		if len(v) == 0 {
			t.Error("empty capture")
		}
	}
}

func TestMatch_RegistrationOrderPreserved(t *testing.T) {
	b := newBuildRouter()
	b.add(t, ":x")
	b.add(t, ":y")
	b.rebuild()

	got := b.match("z")
	want := []string{":x", ":y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("match order = %v, want %v", got, want)
	}
}

func TestMatch_FirstMatchWins(t *testing.T) {
	b := newBuildRouter()
	b.add(t, ":x")
	b.add(t, ":y")
	b.rebuild()

	var order []string
	b.compact.Match([]byte("z"), b.terminals, func(terminal int, _ map[string]string) bool {
		order = append(order, b.terminals[terminal].Pattern)
		return true
	})
	if len(order) != 1 || order[0] != ":x" {
		t.Fatalf("first visited = %v, want [:x] (registration order, stop on true)", order)
	}
}

func TestMatch_EmptyInput(t *testing.T) {
	b := newBuildRouter()
	b.add(t, "/")
	b.rebuild()

	if got := b.match(""); got != nil {
		t.Errorf("match(\"\") = %v, want no match (no pattern accepts empty path)", got)
	}
	if got := b.match("/"); !reflect.DeepEqual(got, []string{"/"}) {
		t.Errorf("match(\"/\") = %v, want [/]", got)
	}
}

func TestMatch_Rebuild_Idempotent(t *testing.T) {
	b := newBuildRouter()
	b.add(t, "/a/:id")
	b.rebuild()
	first := b.match("/a/1")

	b.rebuild()
	second := b.match("/a/1")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("rebuild changed match results: %v vs %v", first, second)
	}
}
