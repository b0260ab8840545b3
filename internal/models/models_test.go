package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_HasName(t *testing.T) {
	assert.False(t, (&List{}).HasName())
	assert.True(t, (&List{Name: "Buy milk"}).HasName())
}

func TestList_Ownership(t *testing.T) {
	owned := &List{OwnerEmail: "a@b.com", SharedWith: []string{"c@d.com"}}
	anonymous := &List{}

	assert.True(t, owned.IsOwnedBy("a@b.com"))
	assert.False(t, owned.IsOwnedBy("c@d.com"))
	assert.False(t, anonymous.IsOwnedBy(""), "anonymous lists have no owner")

	assert.True(t, owned.IsSharedWith("c@d.com"))
	assert.False(t, owned.IsSharedWith("a@b.com"))
}

func TestValidationError(t *testing.T) {
	wrapped := fmt.Errorf("add item: %w", ErrDuplicateItem)

	assert.True(t, IsValidation(wrapped))
	assert.True(t, errors.Is(wrapped, ErrDuplicateItem))
	assert.Equal(t, DuplicateItemMessage, ErrDuplicateItem.Error())
	assert.False(t, IsValidation(ErrNotFound))

	var verr *ValidationError
	assert.True(t, errors.As(wrapped, &verr))
	assert.Equal(t, "text", verr.Field)
}
