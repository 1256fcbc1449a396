package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPromptWithoutLocation(t *testing.T) {
	p := UserPrompt("")
	assert.Contains(t, p, "Identify this object")
	assert.NotContains(t, p, "GEOGRAPHIC CONTEXT")

	// blank locations are treated as absent
	assert.NotContains(t, UserPrompt("   "), "GEOGRAPHIC CONTEXT")
}

func TestUserPromptWithLocation(t *testing.T) {
	p := UserPrompt("Black Hills, South Dakota")
	assert.Contains(t, p, "GEOGRAPHIC CONTEXT")
	assert.Contains(t, p, "Black Hills, South Dakota")
}

func TestSystemInstructionMentionsRole(t *testing.T) {
	assert.Contains(t, SystemInstruction(), "expert geologist")
}
