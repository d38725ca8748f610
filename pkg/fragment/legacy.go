package fragment

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/types"
)

const assignMarker = "implementors["

// parseScript extracts the library buckets from a rustdoc implementors
// script. Only the assignments are read; the registration code around them
// is ignored.
func parseScript(src string) (types.Implementors, error) {
	out := types.Implementors{}
	rest := src
	for {
		i := strings.Index(rest, assignMarker)
		if i < 0 {
			return out, nil
		}
		rest = rest[i+len(assignMarker):]

		lib, after, err := scanString(rest)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFragmentParse, "invalid library name")
		}
		after, err = expect(after, ']', '=', '[')
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFragmentParse, "invalid assignment for library %q", lib)
		}
		entries, after, err := scanArray(after)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFragmentParse, "invalid implementors for library %q", lib)
		}
		out[lib] = entries
		rest = after
	}
}

// expect consumes the given punctuation in order, skipping whitespace
func expect(s string, chars ...byte) (string, error) {
	for _, c := range chars {
		s = strings.TrimLeft(s, " \t\r\n")
		if s == "" || s[0] != c {
			return s, errors.Newf(errors.ErrFragmentParse, "expected %q", c)
		}
		s = s[1:]
	}
	return s, nil
}

// scanArray reads string elements up to the closing bracket. A trailing
// comma is allowed.
func scanArray(s string) ([]types.Implementor, string, error) {
	entries := []types.Implementor{}
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		if s == "" {
			return nil, s, errors.New(errors.ErrFragmentParse, "unterminated array")
		}
		switch s[0] {
		case ']':
			return entries, s[1:], nil
		case ',':
			s = s[1:]
		case '"', '\'':
			v, rest, err := scanString(s)
			if err != nil {
				return nil, s, err
			}
			entries = append(entries, types.Implementor(v))
			s = rest
		default:
			return nil, s, errors.Newf(errors.ErrFragmentParse, "unexpected %q in array", s[0])
		}
	}
}

// scanString reads one single- or double-quoted string literal and returns
// its decoded value and the remaining input.
func scanString(s string) (string, string, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return "", s, errors.New(errors.ErrFragmentParse, "expected string literal")
	}
	quote := s[0]

	var b strings.Builder
	for i := 1; i < len(s); {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), s[i+1:], nil
		case c == '\\':
			if i+1 >= len(s) {
				return "", s, errors.New(errors.ErrFragmentParse, "unterminated escape")
			}
			n, err := unescape(&b, s[i+1:])
			if err != nil {
				return "", s, err
			}
			i += 1 + n
		case c == '\n':
			return "", s, errors.New(errors.ErrFragmentParse, "newline in string literal")
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size
		}
	}
	return "", s, errors.New(errors.ErrFragmentParse, "unterminated string literal")
}

// unescape writes the character for the escape sequence at the start of s
// (the part after the backslash) and returns how many bytes it consumed.
func unescape(b *strings.Builder, s string) (int, error) {
	switch s[0] {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case '0':
		b.WriteByte(0)
	case 'u':
		if len(s) < 5 {
			return 0, errors.New(errors.ErrFragmentParse, "short unicode escape")
		}
		v, err := strconv.ParseUint(s[1:5], 16, 32)
		if err != nil {
			return 0, errors.Wrap(err, errors.ErrFragmentParse, "invalid unicode escape")
		}
		r := rune(v)
		if utf16.IsSurrogate(r) && len(s) >= 11 && s[5] == '\\' && s[6] == 'u' {
			if lo, err := strconv.ParseUint(s[7:11], 16, 32); err == nil {
				if pair := utf16.DecodeRune(r, rune(lo)); pair != utf8.RuneError {
					b.WriteRune(pair)
					return 11, nil
				}
			}
		}
		b.WriteRune(r)
		return 5, nil
	case 'x':
		if len(s) < 3 {
			return 0, errors.New(errors.ErrFragmentParse, "short hex escape")
		}
		v, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, errors.Wrap(err, errors.ErrFragmentParse, "invalid hex escape")
		}
		b.WriteRune(rune(v))
		return 3, nil
	default:
		// \\ \' \" \/ and any other character stand for themselves
		r, size := utf8.DecodeRuneInString(s)
		b.WriteRune(r)
		return size, nil
	}
	return 1, nil
}
