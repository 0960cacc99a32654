package par

import "testing"

func TestTrimTrailingWhitespace(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"hello   ", "hello"},
		{"hello\t\n", "hello"},
		{"   ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := trimTrailingWhitespace(c.in); got != c.want {
			t.Errorf("trimTrailingWhitespace(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTrimToAlphabetic(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"hello,", "hello"},
		{"hello123", "hello"},
		{"123", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := trimToAlphabetic(c.in); got != c.want {
			t.Errorf("trimToAlphabetic(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
