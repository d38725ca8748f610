package fragment

import (
	"testing"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	src := `(function() {var implementors = {};
implementors['libc'] = [];implementors['ramp'] = ["impl <a class='trait' href='x'>BitXor</a> for Int","impl&lt;'a&gt; BitXor for &amp;'a Int",];implementors["float"] = ['impl BitXor for Sign'];

            if (window.register_implementors) {
                window.register_implementors(implementors);
            } else {
                window.pending_implementors = implementors;
            }
})()`

	got, err := parseScript(src)
	require.NoError(t, err)

	assert.Equal(t, types.Implementors{
		"libc": {},
		"ramp": {
			"impl <a class='trait' href='x'>BitXor</a> for Int",
			"impl&lt;'a&gt; BitXor for &amp;'a Int",
		},
		"float": {"impl BitXor for Sign"},
	}, got)
	assert.NotNil(t, got["libc"])
}

func TestParseScriptNoAssignments(t *testing.T) {
	got, err := parseScript(`(function() {var implementors = {};})()`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unquoted library", `implementors[ramp] = [];`},
		{"missing equals", `implementors['ramp'] ["a"];`},
		{"unterminated array", `implementors['ramp'] = ["a",`},
		{"unterminated string", `implementors['ramp'] = ["a];`},
		{"bare element", `implementors['ramp'] = [a];`},
		{"bad unicode escape", `implementors['ramp'] = ["\uZZZZ"];`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScript(tt.src)
			assert.True(t, errors.IsErrorCode(err, errors.ErrFragmentParse), "got %v", err)
		})
	}
}

func TestScanStringEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
		rest string
	}{
		{`"plain" tail`, "plain", " tail"},
		{`'it\'s'`, "it's", ""},
		{`"a\"b"`, `a"b`, ""},
		{`"tab\there"`, "tab\there", ""},
		{`"été"`, "été", ""},
		{`"\x41\\"`, `A\`, ""},
		{`"caf€"`, "caf€", ""},
		{`"\u00e9"`, "é", ""},
		{`"\ud83d\ude00"`, "😀", ""},
		{`"\ud83d!"`, "\uFFFD!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, rest, err := scanString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
