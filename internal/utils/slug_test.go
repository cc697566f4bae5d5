package utils

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Managing Anxiety: A Gentle Guide!  ", "managing-anxiety-a-gentle-guide"},
		{"Self-care 101", "self-care-101"},
		{"many    spaces", "many-spaces"},
		{"snake_case_title", "snake-case-title"},
		{"trailing punctuation...", "trailing-punctuation"},
		{"", ""},
		{"***", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}
