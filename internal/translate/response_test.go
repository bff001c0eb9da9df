package translate

import (
	"reflect"
	"testing"
)

func TestParseResponseNumberedLines(t *testing.T) {
	response := "1. 第一句\n2: 第二句\n3) 第三句"

	translations, mismatch := ParseResponse(response, 3)
	if mismatch {
		t.Fatal("unexpected mismatch")
	}
	want := []string{"第一句", "第二句", "第三句"}
	if !reflect.DeepEqual(translations, want) {
		t.Fatalf("got %v, want %v", translations, want)
	}
}

func TestParseResponseStripsQuotes(t *testing.T) {
	translations, _ := ParseResponse(`1. "quoted text"`+"\n2. 'single quoted'", 2)
	if translations[0] != "quoted text" || translations[1] != "single quoted" {
		t.Fatalf("quotes not stripped: %v", translations)
	}
}

func TestParseResponseOutOfOrder(t *testing.T) {
	response := "2. second\n1. first\n3. third"
	translations, mismatch := ParseResponse(response, 3)
	if mismatch {
		t.Fatal("unexpected mismatch")
	}
	if translations[0] != "first" || translations[1] != "second" || translations[2] != "third" {
		t.Fatalf("order not repaired: %v", translations)
	}
}

func TestParseResponseMissingEntriesPadded(t *testing.T) {
	response := "1. first\n3. third"
	translations, mismatch := ParseResponse(response, 3)
	if !mismatch {
		t.Fatal("expected mismatch to be reported")
	}
	if translations[1] != "" {
		t.Fatalf("expected empty placeholder for missing entry, got %q", translations[1])
	}
	if translations[0] != "first" || translations[2] != "third" {
		t.Fatalf("unexpected translations: %v", translations)
	}
}

func TestParseResponseDuplicateNumberOverwrites(t *testing.T) {
	response := "1. draft\n2. second\n1. final"
	translations, mismatch := ParseResponse(response, 2)
	if mismatch {
		t.Fatal("duplicate of an already filled slot is not a mismatch")
	}
	if translations[0] != "final" || translations[1] != "second" {
		t.Fatalf("unexpected translations: %v", translations)
	}
}

func TestParseResponseExcessEntriesTruncated(t *testing.T) {
	response := "1. one\n2. two\n3. three\n4. four"
	translations, mismatch := ParseResponse(response, 2)
	if !mismatch {
		t.Fatal("expected mismatch to be reported")
	}
	if len(translations) != 2 {
		t.Fatalf("expected 2 translations, got %d", len(translations))
	}
}

func TestParseResponseIgnoresChatter(t *testing.T) {
	response := "Sure, here are the translations:\n\n1. first\n2. second\n\nLet me know if you need anything else."
	translations, mismatch := ParseResponse(response, 2)
	if mismatch {
		t.Fatal("unexpected mismatch")
	}
	if translations[0] != "first" || translations[1] != "second" {
		t.Fatalf("unexpected translations: %v", translations)
	}
}

func TestParseResponseEmpty(t *testing.T) {
	translations, mismatch := ParseResponse("", 2)
	if !mismatch {
		t.Fatal("expected mismatch for empty response")
	}
	if translations[0] != "" || translations[1] != "" {
		t.Fatalf("expected empty placeholders, got %v", translations)
	}
}
