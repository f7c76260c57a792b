package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodeString(t *testing.T) {
	codePattern := regexp.MustCompile(`^QR-[0-9A-F]{8}$`)

	code, err := GenerateCodeString()
	assert.NoError(t, err)
	assert.Regexp(t, codePattern, code, "Generated code should match the expected format")

	// Two consecutive codes should not collide in practice.
	other, err := GenerateCodeString()
	assert.NoError(t, err)
	assert.NotEqual(t, code, other, "Consecutive codes should differ")
}
