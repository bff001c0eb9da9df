package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize parses a BCP-47 tag and returns its canonical string form.
func Normalize(tag string) (string, error) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// DisplayName returns the English name for a language tag, falling back to
// the raw tag when it cannot be parsed.
func DisplayName(tag string) string {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return tag
	}
	if name := display.English.Languages().Name(parsed); name != "" {
		return name
	}
	return tag
}

// SelfName returns a language's name in that language ("日本語" for ja),
// falling back to the English name.
func SelfName(tag string) string {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return tag
	}
	if name := display.Self.Name(parsed); name != "" {
		return name
	}
	return DisplayName(tag)
}

// Detection reports the language guessed from sample text.
type Detection struct {
	// Code is the ISO 639-1 code when one exists, otherwise ISO 639-3.
	Code string
	// Name is the English language name.
	Name string
	// Confidence is whatlanggo's 0..1 score.
	Confidence float64
}

// Detect guesses the language of the provided text. Empty or unrecognizable
// text yields a zero Detection.
func Detect(text string) Detection {
	text = strings.TrimSpace(text)
	if text == "" {
		return Detection{}
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	return Detection{
		Code:       code,
		Name:       info.Lang.String(),
		Confidence: info.Confidence,
	}
}

// Matches reports whether sample text already appears to be in the target
// language. The comparison uses base languages, so detected "zh" matches a
// "zh-TW" target. Low-confidence detections never match.
func Matches(text, targetTag string) bool {
	const minConfidence = 0.7

	detection := Detect(text)
	if detection.Code == "" || detection.Confidence < minConfidence {
		return false
	}
	target, err := language.Parse(strings.TrimSpace(targetTag))
	if err != nil {
		return false
	}
	targetBase, _ := target.Base()

	detected, err := language.Parse(detection.Code)
	if err != nil {
		return false
	}
	detectedBase, _ := detected.Base()

	return targetBase.String() == detectedBase.String()
}
