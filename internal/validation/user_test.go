package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob_2", "a.b-c", "X", strings.Repeat("a", 30)}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{"", "with space", "emoji😀", "a/b", strings.Repeat("a", 31)}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), u)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last+tag@sub.example.org"}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{"", "plain", "no@tld", "two@@x.com", "spa ce@x.com",
		strings.Repeat("a", 250) + "@x.com"}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("n", 101)))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("pw1"))
	assert.NoError(t, ValidatePassword(strings.Repeat("p", 72)))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 73)))
}
