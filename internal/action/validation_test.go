package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidationErrors_ZeroValueIsValid tests that a fresh accumulator
// reports no errors.
func TestValidationErrors_ZeroValueIsValid(t *testing.T) {
	var v ValidationErrors

	assert.False(t, v.HasErrors())
	assert.True(t, v.Empty())
	assert.Empty(t, v.Messages())
	assert.Equal(t, "", v.Join())
}

// TestValidationErrors_JoinPreservesInsertionOrder tests the "; " join
// rendering used in validation failure messages.
func TestValidationErrors_JoinPreservesInsertionOrder(t *testing.T) {
	var v ValidationErrors
	v.AddError("Mock Validation Error")
	v.AddError("Another Error")

	assert.True(t, v.HasErrors())
	assert.False(t, v.Empty())
	assert.Equal(t, []string{"Mock Validation Error", "Another Error"}, v.Messages())
	assert.Equal(t, "Mock Validation Error; Another Error", v.Join())
}

// TestValidationErrors_NilReceiver tests that a nil accumulator reads as
// valid, so handlers may return nil for "nothing to report".
func TestValidationErrors_NilReceiver(t *testing.T) {
	var v *ValidationErrors

	assert.False(t, v.HasErrors())
	assert.True(t, v.Empty())
	assert.Nil(t, v.Messages())
	assert.Equal(t, "", v.Join())
}

// TestValidationErrors_MessagesReturnsCopy tests that callers cannot
// mutate the accumulator through the returned slice.
func TestValidationErrors_MessagesReturnsCopy(t *testing.T) {
	var v ValidationErrors
	v.AddError("original")

	msgs := v.Messages()
	msgs[0] = "mutated"

	assert.Equal(t, []string{"original"}, v.Messages())
}
