package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlayState_String(t *testing.T) {
	assert.Equal(t, "pending", OverlayPending.String())
	assert.Equal(t, "presented", OverlayPresented.String())
	assert.Equal(t, "dismissing", OverlayDismissing.String())
	assert.Equal(t, "removed", OverlayRemoved.String())
	assert.Equal(t, "unknown", OverlayState(42).String())
}

func TestOverlayState_Visible(t *testing.T) {
	assert.False(t, OverlayPending.Visible())
	assert.True(t, OverlayPresented.Visible())
	assert.False(t, OverlayDismissing.Visible())
	assert.False(t, OverlayRemoved.Visible())
}

func TestResultConstructors(t *testing.T) {
	assert.Equal(t, Result{Kind: ResultSuccess}, Success(nil))
	assert.Equal(t, ResultNotImplemented, NotImplemented().Kind)

	r := Failure("bad_call", "malformed", "x")
	assert.Equal(t, ResultError, r.Kind)
	assert.Equal(t, "bad_call", r.Code)
	assert.Equal(t, "malformed", r.Message)
	assert.Equal(t, "x", r.Details)
	assert.Equal(t, "error", r.Kind.String())
}
