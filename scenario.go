package lendon

import (
	"fmt"
	"strings"
)

// Scenario identifies a content-generation mode. It selects both the UI tab
// and the prompt template used by providers.
type Scenario string

const (
	// ScenarioSEOTitle produces a marketplace product title.
	ScenarioSEOTitle Scenario = "SEO_TITLE"
	// ScenarioProductDetail produces a product description.
	ScenarioProductDetail Scenario = "PRODUCT_DETAIL"
	// ScenarioCustomerService produces a reply to a buyer.
	ScenarioCustomerService Scenario = "CUSTOMER_SERVICE"
	// ScenarioMarketing produces social/ads copy.
	ScenarioMarketing Scenario = "MARKETING"
)

// SEOTitleLimit is the marketplace title limit, in characters.
const SEOTitleLimit = 120

// ScenarioConfig is the static metadata of a scenario.
type ScenarioConfig struct {
	ID             Scenario
	Icon           string // Icon name understood by the display surface
	DescriptionKey string // Key under the "tabs" section of the string table
	Limit          int    // Character limit; 0 means none
}

// scenarios is the display/tab order.
var scenarios = []ScenarioConfig{
	{ID: ScenarioSEOTitle, Icon: "Tag", DescriptionKey: "seo", Limit: SEOTitleLimit},
	{ID: ScenarioProductDetail, Icon: "FileText", DescriptionKey: "product"},
	{ID: ScenarioCustomerService, Icon: "MessageCircle", DescriptionKey: "cs"},
	{ID: ScenarioMarketing, Icon: "Megaphone", DescriptionKey: "marketing"},
}

var scenarioIndex = func() map[Scenario]int {
	idx := make(map[Scenario]int, len(scenarios))
	for i, cfg := range scenarios {
		idx[cfg.ID] = i
	}
	return idx
}()

// ListScenarios returns every scenario in tab order.
func ListScenarios() []ScenarioConfig {
	out := make([]ScenarioConfig, len(scenarios))
	copy(out, scenarios)
	return out
}

// ConfigFor returns the static metadata for a scenario.
func ConfigFor(s Scenario) (ScenarioConfig, bool) {
	i, ok := scenarioIndex[s]
	if !ok {
		return ScenarioConfig{}, false
	}
	return scenarios[i], true
}

// LimitFor returns the character limit for a scenario, if it defines one.
func LimitFor(s Scenario) (int, bool) {
	cfg, ok := ConfigFor(s)
	if !ok || cfg.Limit <= 0 {
		return 0, false
	}
	return cfg.Limit, true
}

// Valid reports whether s is a registered scenario.
func (s Scenario) Valid() bool {
	_, ok := scenarioIndex[s]
	return ok
}

// Key returns the short string-table key ("seo", "product", ...).
func (s Scenario) Key() string {
	cfg, _ := ConfigFor(s)
	return cfg.DescriptionKey
}

// ParseScenario accepts a scenario id ("SEO_TITLE", "seo_title") or its
// short key ("seo", "product", "cs", "marketing").
func ParseScenario(value string) (Scenario, error) {
	v := strings.TrimSpace(value)
	for _, cfg := range scenarios {
		if strings.EqualFold(v, string(cfg.ID)) || strings.EqualFold(v, cfg.DescriptionKey) {
			return cfg.ID, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q", value)
}
