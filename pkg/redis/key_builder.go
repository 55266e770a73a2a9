package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: "devimpact:" + prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeyTeamOverview() string {
	return kb.BuildKey(KeyTeamOverview)
}

func (kb *KeyBuilder) KeyRegistrationAnalytics() string {
	return kb.BuildKey(KeyRegistrationAnalytics)
}

// KeyAdminPattern matches every admin dashboard cache entry for this environment
func (kb *KeyBuilder) KeyAdminPattern() string {
	return kb.BuildKey(KeyAdminPattern)
}
