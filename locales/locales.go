// Package locales holds the interface strings in every supported language.
package locales

import (
	"fmt"
	"sort"
	"strings"

	"github.com/holiy930561/LenDon"
	"golang.org/x/text/language"
)

// Language is a supported interface language.
type Language string

const (
	EN Language = "en"
	ZH Language = "zh"
)

// Default is used when no language is configured.
const Default = EN

// Sections of the string table.
const (
	SectionHeader   = "header"
	SectionTabs     = "tabs"
	SectionInput    = "input"
	SectionOutput   = "output"
	SectionAction   = "action"
	SectionSettings = "settings"
)

var supported = []Language{EN, ZH}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Chinese,
})

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// ParseLanguage resolves a BCP 47 tag or Accept-Language style list to a
// supported language. "zh-CN", "zh-Hans" and "en-US" all resolve.
func ParseLanguage(tag string) (Language, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Default, nil
	}

	tags, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(tag, "_", "-"))
	if err != nil || len(tags) == 0 {
		return "", fmt.Errorf("unknown language %q", tag)
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", fmt.Errorf("unsupported language %q", tag)
	}
	return supported[idx], nil
}

// ScenarioLabel is the display text for one scenario tab.
type ScenarioLabel struct {
	Label       string
	Description string
}

func table(lang Language) (map[string]map[string]string, error) {
	t, ok := translations[lang]
	if !ok {
		return nil, &lendon.MissingTranslationError{Language: string(lang), Key: "*"}
	}
	return t, nil
}

// Lookup returns the string for a dotted key such as "output.errorTitle".
func Lookup(lang Language, key string) (string, error) {
	t, err := table(lang)
	if err != nil {
		return "", err
	}

	section, name, ok := strings.Cut(key, ".")
	if !ok {
		return "", &lendon.MissingTranslationError{Language: string(lang), Key: key}
	}

	value, ok := t[section][name]
	if !ok || value == "" {
		return "", &lendon.MissingTranslationError{Language: string(lang), Key: key}
	}
	return value, nil
}

// StringsFor returns a copy of one section of the table.
func StringsFor(lang Language, section string) (map[string]string, error) {
	t, err := table(lang)
	if err != nil {
		return nil, err
	}

	s, ok := t[section]
	if !ok {
		return nil, &lendon.MissingTranslationError{Language: string(lang), Key: section}
	}

	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}

// LabelFor returns the tab label and description of a scenario.
func LabelFor(lang Language, s lendon.Scenario) (ScenarioLabel, error) {
	cfg, ok := lendon.ConfigFor(s)
	if !ok {
		return ScenarioLabel{}, &lendon.MissingTranslationError{Language: string(lang), Key: "tabs." + string(s)}
	}

	label, err := Lookup(lang, "tabs."+cfg.DescriptionKey+".label")
	if err != nil {
		return ScenarioLabel{}, err
	}
	desc, err := Lookup(lang, "tabs."+cfg.DescriptionKey+".desc")
	if err != nil {
		return ScenarioLabel{}, err
	}

	return ScenarioLabel{Label: label, Description: desc}, nil
}

// Keys returns every dotted key defined for lang, sorted.
func Keys(lang Language) []string {
	t := translations[lang]
	var keys []string
	for section, entries := range t {
		for name := range entries {
			keys = append(keys, section+"."+name)
		}
	}
	sort.Strings(keys)
	return keys
}

// Check verifies that every language defines the same non-empty keys and
// that every registered scenario has a label and description.
func Check() error {
	reference := Keys(Default)

	for _, lang := range supported {
		for _, key := range reference {
			if _, err := Lookup(lang, key); err != nil {
				return err
			}
		}
		// Keys only the other language defines.
		for _, key := range Keys(lang) {
			if _, err := Lookup(Default, key); err != nil {
				return err
			}
		}
		for _, cfg := range lendon.ListScenarios() {
			if _, err := LabelFor(lang, cfg.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
