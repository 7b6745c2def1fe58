//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"resource-hub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("start time cannot be in the past")

	cases := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "marked invalid", err: errs.Mark(base, errs.ErrInvalid), want: errs.KindInvalid},
		{name: "marked then wrapped", err: errs.Wrap(errs.Mark(base, errs.ErrConflict), "approve"), want: errs.KindConflict},
		{name: "fmt wrapped mark", err: fmt.Errorf("outer: %w", errs.Mark(base, errs.ErrForbidden)), want: errs.KindForbidden},
		{name: "sentinel itself", err: errs.ErrNotFound, want: errs.KindNotFound},
		{name: "transient", err: errs.Mark(base, errs.ErrTransient), want: errs.KindTransient},
		{name: "unmarked", err: base, want: errs.KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.KindOf(tc.err))
		})
	}
}

func TestMarkKeepsMessage(t *testing.T) {
	base := errors.New("duration must be at least 15 minutes")
	marked := errs.Mark(base, errs.ErrInvalid)

	assert.Equal(t, base.Error(), marked.Error())
	assert.True(t, errs.Is(marked, base))
	assert.True(t, errs.KindOf(marked) == errs.KindInvalid)
	assert.False(t, errs.KindOf(marked).Retryable())
	assert.True(t, errs.KindTransient.Retryable())
}
