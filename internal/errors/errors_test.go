package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"gofactorial/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{nil, ""},
		{core.NewInvalidParameterError("confidence", 1.5, "out of range"), CodeInvalidParameter},
		{core.ErrEmptyInput, CodeMalformedInput},
		{core.NewRowCountError(3), CodeInvalidDesign},
		{stderrors.New("boom"), CodeInternalError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, Classify(tt.err), "%v", tt.err)
	}
}

func TestWrap_KeepsDomainClassification(t *testing.T) {
	err := Wrap(core.NewRaggedRowError(1, 2, 3), "load observations")
	assert.Equal(t, CodeMalformedInput, GetCode(err))
	assert.True(t, core.IsMalformedInput(err))
	assert.Contains(t, err.Error(), "load observations")

	twice := Wrapf(err, "file %s", "data.txt")
	assert.Equal(t, CodeMalformedInput, GetCode(twice))
	assert.True(t, IsAppError(twice))

	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitErrorConfig, ExitCode(ConfigInvalid("bad")))
	assert.Equal(t, ExitErrorConfig, ExitCode(core.ErrInvalidParameter))
	assert.Equal(t, ExitErrorInput, ExitCode(Wrap(core.ErrNoFactors, "x")))
	assert.Equal(t, ExitErrorIO, ExitCode(IOError("open", stderrors.New("denied"))))
	assert.Equal(t, ExitErrorCanceled, ExitCode(fmt.Errorf("run: %w", context.Canceled)))
	assert.Equal(t, ExitErrorGeneric, ExitCode(InternalError("oops")))
}
