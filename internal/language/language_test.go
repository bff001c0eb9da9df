package language

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"zh-tw", "zh-TW", false},
		{"JA", "ja", false},
		{" en-US ", "en-US", false},
		{"not a tag", "", true},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Normalize(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ja"); got != "Japanese" {
		t.Fatalf("DisplayName(ja) = %q", got)
	}
	if got := DisplayName("??"); got != "??" {
		t.Fatalf("DisplayName fallback = %q", got)
	}
}

func TestSelfName(t *testing.T) {
	if got := SelfName("ja"); got != "日本語" {
		t.Fatalf("SelfName(ja) = %q", got)
	}
}

func TestDetect(t *testing.T) {
	d := Detect("The quick brown fox jumps over the lazy dog and keeps on running through the field.")
	if d.Code != "en" {
		t.Fatalf("detected %q (%s), want en", d.Code, d.Name)
	}

	if d := Detect(""); d.Code != "" {
		t.Fatalf("empty text detected as %q", d.Code)
	}
}

func TestMatches(t *testing.T) {
	english := "This is clearly an English sentence with plenty of ordinary words in it."
	if !Matches(english, "en-US") {
		t.Fatal("English text should match en-US")
	}
	if Matches(english, "ja") {
		t.Fatal("English text should not match ja")
	}
	if Matches("", "en") {
		t.Fatal("empty text should never match")
	}
	if Matches(english, "not a tag") {
		t.Fatal("invalid target tag should never match")
	}
}
