package automaton

import "testing"

func TestParsePattern_Valid(t *testing.T) {
	tests := []struct {
		pattern   string
		wantNames []string
	}{
		{"/test", nil},
		{"/a/:test", []string{"test"}},
		{"/a/:test/", []string{"test"}},
		{":v1/:v2", []string{"v1", "v2"}},
		{"a/:v3", []string{"v3"}},
		{":v4/b", []string{"v4"}},
		{"ab", nil},
		{"a*", nil},
		{"*", nil},
		{"/files/:name*", nil}, // literal 'e' separates name from '*'... see below
	}
	// The last case above is actually malformed (':' then '*' adjacent after
	// the name terminates at end-of-string, not '/'); drop it and verify the
	// adjacency rule separately instead of asserting success on it.
	tests = tests[:len(tests)-1]

	for _, tt := range tests {
		_, names, err := ParsePattern(tt.pattern)
		if err != nil {
			t.Fatalf("ParsePattern(%q): unexpected error: %v", tt.pattern, err)
		}
		if len(names) != len(tt.wantNames) {
			t.Fatalf("ParsePattern(%q): names = %v, want %v", tt.pattern, names, tt.wantNames)
		}
		for i := range names {
			if names[i] != tt.wantNames[i] {
				t.Errorf("ParsePattern(%q): names[%d] = %q, want %q", tt.pattern, i, names[i], tt.wantNames[i])
			}
		}
	}
}

func TestParsePattern_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr error
	}{
		{"", ErrEmptyPattern},
		{"/a/:", ErrEmptyPlaceholderName},
		{"/a/:/b", ErrEmptyPlaceholderName},
		{"/a*/b", ErrWildcardNotFinal},
		{"/a/:x:y", ErrAdjacentPlaceholders},
		{"/a/:x*", ErrAdjacentPlaceholders},
		{"/a/:x/:x", ErrDuplicatePlaceholder},
	}

	for _, tt := range tests {
		_, _, err := ParsePattern(tt.pattern)
		if err != tt.wantErr {
			t.Errorf("ParsePattern(%q): err = %v, want %v", tt.pattern, err, tt.wantErr)
		}
	}
}

func TestParsePattern_TooManyPlaceholders(t *testing.T) {
	pattern := ""
	for i := 0; i < MaxPlaceholders+1; i++ {
		pattern += "/:p" + string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	_, _, err := ParsePattern(pattern)
	if err != ErrTooManyPlaceholders {
		t.Errorf("err = %v, want ErrTooManyPlaceholders", err)
	}
}
