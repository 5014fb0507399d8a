package provider

import (
	"fmt"
	"strings"

	"github.com/holiy930561/LenDon"
)

// scenarioPrompt holds the writing rules for one scenario.
type scenarioPrompt struct {
	Task  string
	Rules []string
}

var scenarioPrompts = map[lendon.Scenario]scenarioPrompt{
	lendon.ScenarioSEOTitle: {
		Task: "Write one Shopee/Lazada product title.",
		Rules: []string{
			"Structure: Brand + Model + key features + target buyer.",
			"Always start with [Freeship].",
			fmt.Sprintf("Stay under %d characters in total, including spaces.", lendon.SEOTitleLimit),
			"Drop filler adjectives before dropping features.",
			"Return a single line without line breaks or emoji.",
		},
	},
	lendon.ScenarioProductDetail: {
		Task: "Write a product description for a Vietnamese marketplace listing.",
		Rules: []string{
			"Turn every feature into a customer benefit (feature → benefit).",
			"Present the benefits as a Markdown bullet list, each bullet starting with a fitting emoji.",
			"If the source mentions sizes or measurements, end with a short size warning asking buyers to check the size chart before ordering.",
			"Keep units and numbers exactly as in the source.",
		},
	},
	lendon.ScenarioCustomerService: {
		Task: "Write a customer-service reply to a Vietnamese buyer.",
		Rules: []string{
			"Open with \"Dạ\" or \"Vâng\".",
			"Use a soft, respectful tone and address the buyer as \"anh/chị\".",
			"Never argue or blame the buyer; soften any refusal.",
			"Close professionally, thanking the buyer and inviting further questions.",
		},
	},
	lendon.ScenarioMarketing: {
		Task: "Write short marketing copy for TikTok Shop and Facebook posts.",
		Rules: []string{
			"Create urgency with FOMO expressions such as 'Sale sập sàn' and 'Giá hủy diệt'.",
			"Use short punchy lines and a few emoji.",
			"End with a clear call to action.",
			"Markdown emphasis is allowed for the headline.",
		},
	},
}

// HasPrompt reports whether the scenario has writing rules.
func HasPrompt(s lendon.Scenario) bool {
	_, ok := scenarioPrompts[s]
	return ok
}

// BuildSystemPrompt assembles the system prompt for a request.
func BuildSystemPrompt(req GenerationRequest, regenerate bool) string {
	targetName := lendon.GetLanguageName(lendon.TargetLocale)
	sourceName := lendon.GetLanguageName(lendon.SourceLocale)

	sp, ok := scenarioPrompts[req.Scenario]
	if !ok {
		sp = scenarioPrompts[lendon.ScenarioProductDetail]
	}

	prompt := fmt.Sprintf(`# Role
You are a senior Vietnamese e-commerce copywriter. You localize %s product content into %s that reads as if a Vietnamese seller wrote it.

# Task
%s

# Rules`, sourceName, targetName, sp.Task)

	for _, rule := range sp.Rules {
		prompt += "\n- " + rule
	}

	prompt += fmt.Sprintf(`

# Style Guide
- **Natural Flow**: Never translate word by word. Use the vocabulary Vietnamese shoppers actually search for.
- **Marketplace Tone**: Match the conventions of Shopee, Lazada and TikTok Shop in Vietnam.
- **Output Language**: Everything you write must be %s, except the terms listed below.`, targetName)

	if req.HasGlossary() {
		prompt += "\n\n# Untranslated Terms\nKeep these terms exactly as written. Do NOT translate or transliterate them:\n- " +
			strings.Join(req.GlossaryTerms, "\n- ")
	}

	if len(req.InjectedKeywords) > 0 {
		prompt += "\n\n# Must Include\nWork these keywords into the text naturally, in this order of priority:"
		for i, kw := range req.InjectedKeywords {
			prompt += fmt.Sprintf("\n%d. %s", i+1, kw)
		}
	}

	if regenerate {
		prompt += "\n\n# Variation\nThe seller asked for another version. Use a noticeably different wording and structure from a typical first draft while following every rule above."
	}

	prompt += `

# Format
Return a valid JSON object with a single key "result" containing the finished text.
Example: { "result": "..." }
- Do NOT wrap in Markdown code blocks.
- Do NOT add explanations or notes outside the result.`

	return prompt
}

// BuildUserMessage returns the source text as sent to the model.
func BuildUserMessage(req GenerationRequest) string {
	return strings.TrimSpace(req.SourceText)
}
