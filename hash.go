package lendon

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// RequestFingerprint hashes the content of a request, ignoring its ID and
// timestamp, so identical submissions share a fingerprint.
func RequestFingerprint(req GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString(string(req.Scenario))
	sb.WriteString("\x00")
	sb.WriteString(strings.TrimSpace(req.SourceText))
	sb.WriteString("\x00")
	sb.WriteString(strings.Join(req.GlossaryTerms, "\x1f"))
	sb.WriteString("\x00")
	sb.WriteString(strings.Join(req.InjectedKeywords, "\x1f"))
	return HashText(sb.String())
}

// CacheKey generates a cache key from a fingerprint and scenario.
func CacheKey(hash string, scenario Scenario) string {
	return hash + ":" + string(scenario)
}

// CacheKeyExtended generates a cache key that also includes the model.
// Use this when results from different models must not be mixed.
func CacheKeyExtended(hash, scenario, model string) string {
	if model == "" {
		return CacheKey(hash, Scenario(scenario))
	}
	return CacheKey(hash, Scenario(scenario)) + ":" + model
}
