package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsersParsing(t *testing.T) {
	cfg := &Config{AppUsers: "alice:$2a$12$hashA, bob:$2a$12$hashB"}
	users := cfg.Users()
	assert.Equal(t, map[string]string{
		"alice": "$2a$12$hashA",
		"bob":   "$2a$12$hashB",
	}, users)
}

func TestUsersDropsMalformedEntries(t *testing.T) {
	cfg := &Config{AppUsers: "alice:$2a$12$hashA,,no-colon,:orphanhash,emptyhash:,  "}
	users := cfg.Users()
	assert.Equal(t, map[string]string{"alice": "$2a$12$hashA"}, users)
}

func TestUsersEmpty(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.Users())
}

func TestUsersHashMayContainColons(t *testing.T) {
	// only the first colon splits; bcrypt hashes never carry one but the
	// parser must not truncate values that do
	cfg := &Config{AppUsers: "svc:hash:with:colons"}
	assert.Equal(t, map[string]string{"svc": "hash:with:colons"}, cfg.Users())
}
