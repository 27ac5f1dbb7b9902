package action

import "strings"

// ValidationErrors is an ordered accumulator of human-readable validation
// failure messages. The zero value is ready to use and reports valid.
//
// Messages are kept in insertion order and none are ever dropped; Join
// renders them all for the single validation-failure error the executor
// raises.
type ValidationErrors struct {
	messages []string
}

// AddError appends a failure message.
func (v *ValidationErrors) AddError(message string) {
	v.messages = append(v.messages, message)
}

// HasErrors reports whether any failure was recorded.
func (v *ValidationErrors) HasErrors() bool {
	return v != nil && len(v.messages) > 0
}

// Empty reports the inverse of HasErrors: no failures means valid.
func (v *ValidationErrors) Empty() bool {
	return !v.HasErrors()
}

// Messages returns the recorded messages in insertion order.
func (v *ValidationErrors) Messages() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.messages))
	copy(out, v.messages)
	return out
}

// Join renders all messages joined by "; " in insertion order.
func (v *ValidationErrors) Join() string {
	if v == nil {
		return ""
	}
	return strings.Join(v.messages, "; ")
}
