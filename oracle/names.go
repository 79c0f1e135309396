// ABOUTME: Static display name lookup for oracle provider keys.
// ABOUTME: Unknown keys render verbatim so new providers degrade gracefully.

package oracle

var displayNames = map[string]string{
	"openai": "OpenAI GPT-3.5 Turbo",
	"claude": "Claude 3.5 Sonnet",
	"ollama": "Ollama DeepSeek-R1",
	"lorem":  "Lorem Oracle",
}

// DisplayName resolves a provider key to its human-readable model name.
// Unrecognized keys are returned as-is.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}
