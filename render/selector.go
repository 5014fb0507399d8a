package render

import (
	"fmt"
	"strings"

	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/locales"
)

// ModeSelector renders the scenario tabs in registry order with the
// current scenario marked active.
func ModeSelector(lang locales.Language, current lendon.Scenario) (string, error) {
	nav, err := fragment(`<nav class="mode-selector" role="tablist"></nav>`)
	if err != nil {
		return "", err
	}

	for _, cfg := range lendon.ListScenarios() {
		label, err := locales.LabelFor(lang, cfg.ID)
		if err != nil {
			return "", err
		}

		tab := appendElement(nav, `<button type="button" role="tab" class="tab"><span class="icon"></span><span class="label"></span><p class="desc"></p></button>`)
		tab.SetAttr("data-scenario", string(cfg.ID))
		tab.Find(".icon").SetAttr("data-icon", cfg.Icon)
		tab.Find(".label").SetText(label.Label)
		tab.Find(".desc").SetText(label.Description)

		active := cfg.ID == current
		tab.SetAttr("aria-selected", fmt.Sprint(active))
		if active {
			tab.AddClass("active")
		}
	}

	return outerHTML(nav)
}

// ModeSelectorText renders the scenario tabs for a terminal.
func ModeSelectorText(lang locales.Language, current lendon.Scenario) (string, error) {
	var b strings.Builder
	for _, cfg := range lendon.ListScenarios() {
		label, err := locales.LabelFor(lang, cfg.ID)
		if err != nil {
			return "", err
		}

		marker := " "
		if cfg.ID == current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-10s %-16s %s\n", marker, cfg.DescriptionKey, label.Label, label.Description)
	}
	return b.String(), nil
}
