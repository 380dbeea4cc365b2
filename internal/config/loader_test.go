package config

import "testing"

func TestNormalizeBaseURLAppendsAPISegment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://host:3000", "http://host:3000/api"},
		{"http://host:3000/", "http://host:3000/api"},
		{"http://host:3000/api", "http://host:3000/api"},
		{"http://host:3000/api/", "http://host:3000/api"},
		{"https://panel.example.com/panel", "https://panel.example.com/panel/api"},
		{"https://panel.example.com/api/v2", "https://panel.example.com/api/v2"},
		{"", "http://remnawave:3000/api"},
	}

	for _, tc := range cases {
		if got := NormalizeBaseURL(tc.in); got != tc.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseCookiesJSONObject(t *testing.T) {
	cookies := ParseCookies(`{"a":"1","b":"2"}`)
	if len(cookies) != 2 || cookies["a"] != "1" || cookies["b"] != "2" {
		t.Errorf("unexpected cookies: %v", cookies)
	}
}

func TestParseCookiesJSONList(t *testing.T) {
	cookies := ParseCookies(`[{"name":"session","value":"abc"},{"name":"csrf","value":"xyz"},{"value":"skipped"}]`)
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %v", cookies)
	}
	if cookies["session"] != "abc" || cookies["csrf"] != "xyz" {
		t.Errorf("unexpected cookies: %v", cookies)
	}
}

func TestParseCookiesHeaderString(t *testing.T) {
	cookies := ParseCookies("a=1; b=2")
	if len(cookies) != 2 || cookies["a"] != "1" || cookies["b"] != "2" {
		t.Errorf("unexpected cookies: %v", cookies)
	}
}

func TestParseCookiesMalformedJSONFallsBackToHeader(t *testing.T) {
	cookies := ParseCookies(`{"a": broken; session=abc`)
	if cookies["session"] != "abc" {
		t.Errorf("expected header fallback to recover session cookie, got %v", cookies)
	}
}

func TestParseCookiesEmpty(t *testing.T) {
	if cookies := ParseCookies(""); cookies != nil {
		t.Errorf("expected nil for empty input, got %v", cookies)
	}
	if cookies := ParseCookies("   "); cookies != nil {
		t.Errorf("expected nil for blank input, got %v", cookies)
	}
}

func TestParseIDList(t *testing.T) {
	ids := parseIDList("123, 456,bad,789")
	if len(ids) != 3 || ids[0] != 123 || ids[1] != 456 || ids[2] != 789 {
		t.Errorf("unexpected ids: %v", ids)
	}
	if ids := parseIDList(""); ids != nil {
		t.Errorf("expected nil for empty input, got %v", ids)
	}
}
