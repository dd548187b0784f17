package mindtile

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Already-slugged", "already-slugged"},
		{"Symbols!@# removed", "symbols-removed"},
		{"Ünïcode dropped", "n-code-dropped"},
		{"trailing punctuation!!!", "trailing-punctuation"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	cases := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", []string{"blog", "p1"}, "https://example.com/blog/p1/"},
		{"https://example.com/", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, c := range cases {
		if got := BuildURL(c.base, c.segs...); got != c.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", c.base, c.segs, got, c.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"go", "", "  ", " web "})
	if len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("FilterEmpty = %v", got)
	}
}
