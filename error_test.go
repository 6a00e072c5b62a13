package giftwatch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/giftwatch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := giftwatch.Errorf(giftwatch.ENOTFOUND, "idea %q not found", "test")

	assert.Equal(t, giftwatch.ENOTFOUND, giftwatch.ErrorCode(err))
	assert.Equal(t, "idea \"test\" not found", giftwatch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, giftwatch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, giftwatch.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving: %w", giftwatch.Errorf(giftwatch.EINVALID, "bad price"))

	assert.Equal(t, giftwatch.EINVALID, giftwatch.ErrorCode(err))
	assert.Equal(t, "bad price", giftwatch.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, giftwatch.EINTERNAL, giftwatch.ErrorCode(err))
	assert.Equal(t, "Internal error.", giftwatch.ErrorMessage(err))
}
