package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/locales"
)

// OutputPanel renders the result area for a session snapshot.
func OutputPanel(lang locales.Language, snap lendon.Snapshot) (string, error) {
	t, err := locales.StringsFor(lang, locales.SectionOutput)
	if err != nil {
		return "", err
	}

	panel, err := fragment(`<section class="output-panel"><header><h3 class="title"></h3></header><div class="body"></div></section>`)
	if err != nil {
		return "", err
	}
	panel.SetAttr("data-phase", string(snap.State.Phase))
	panel.Find("h3.title").SetText(t["title"])
	body := panel.Find("div.body")

	state := snap.State
	switch {
	case state.Phase == lendon.PhaseProcessing:
		body.AddClass("loading")
		appendElement(body, `<span class="placeholder"></span>`).SetText(t["processing"])

	case state.Phase == lendon.PhaseReady && state.Result != nil:
		if err := renderResult(panel, body, lang, t, state); err != nil {
			return "", err
		}

	case state.Phase == lendon.PhaseError:
		body.AddClass("failed")
		appendElement(body, `<p class="error-title"></p>`).SetText(t["failed"])
		if state.Err != nil {
			appendElement(body, `<p class="error-detail"></p>`).SetText(state.Err.Error())
		}
		appendActions(panel, t, false)

	default:
		appendElement(body, `<span class="placeholder"></span>`).SetText(t["ready"])
	}

	return outerHTML(panel)
}

func renderResult(panel, body *goquery.Selection, lang locales.Language, t map[string]string, state lendon.GenerationState) error {
	outcome := lendon.Validate(*state.Result)
	if state.Outcome != nil {
		outcome = *state.Outcome
	}

	counter, err := CounterLabel(lang, outcome)
	if err != nil {
		return err
	}
	badge := appendElement(panel.Find("header"), `<span class="counter"></span>`)
	badge.SetText(counter)

	result := appendElement(body, `<div class="result"></div>`)
	result.SetAttr("lang", resultLang)

	if markdownScenarios[state.Result.Scenario] {
		rendered, err := markdownToHTML(state.Result.Text)
		if err != nil {
			return &lendon.ProcessorError{Message: "failed to render markdown", Cause: err, ContentType: "markdown"}
		}
		result.AddClass("markdown")
		result.SetHtml(rendered)
	} else {
		result.AddClass("plain")
		result.SetText(state.Result.Text)
	}

	if outcome.IsOverLimit {
		badge.AddClass("over-limit")
		body.AddClass("over-limit")
		warning := appendElement(panel, `<div class="warning" role="alert"><p class="warning-title"></p><p class="warning-desc"></p></div>`)
		warning.Find(".warning-title").SetText(t["errorTitle"])
		warning.Find(".warning-desc").SetText(t["errorDesc"])
	}

	appendActions(panel, t, true)
	return nil
}

func appendActions(panel *goquery.Selection, t map[string]string, withCopy bool) {
	actions := appendElement(panel, `<div class="actions"></div>`)
	regen := appendElement(actions, `<button type="button" data-action="regenerate"></button>`)
	regen.SetAttr("title", t["regenerate"])
	regen.SetText(t["regenerate"])
	if withCopy {
		appendElement(actions, `<button type="button" data-action="copy"></button>`).SetText(t["copy"])
	}
}

// OutputText renders the result area for a terminal.
func OutputText(lang locales.Language, snap lendon.Snapshot) (string, error) {
	t, err := locales.StringsFor(lang, locales.SectionOutput)
	if err != nil {
		return "", err
	}

	state := snap.State
	var b strings.Builder

	switch state.Phase {
	case lendon.PhaseProcessing:
		b.WriteString(t["processing"] + "\n")
	case lendon.PhaseError:
		fmt.Fprintf(&b, "%s: %v\n", t["failed"], state.Err)
	case lendon.PhaseReady:
		if state.Result == nil {
			break
		}
		outcome := lendon.Validate(*state.Result)
		if state.Outcome != nil {
			outcome = *state.Outcome
		}
		counter, err := CounterLabel(lang, outcome)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s [%s]\n\n%s\n", t["title"], counter, state.Result.Text)
		if outcome.IsOverLimit {
			fmt.Fprintf(&b, "\n! %s\n  %s\n", t["errorTitle"], t["errorDesc"])
		}
	default:
		b.WriteString(t["ready"] + "\n")
	}

	return b.String(), nil
}
