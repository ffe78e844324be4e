package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsAppErrorCode(t *testing.T) {
	base := SchemaError("missing column")
	wrapped := Wrap(base, "validation failed")

	assert.Equal(t, CodeSchema, GetCode(wrapped))
	assert.Equal(t, "validation failed: missing column", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("boom"), "step %d", 3)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 3: boom", wrapped.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, WithCode(CodeIO, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeIO, fmt.Errorf("no such file"))
	assert.Equal(t, CodeIO, GetCode(err))
	assert.True(t, IsAppError(err))

	recoded := WithCode(CodeRender, IOError("open", fmt.Errorf("denied")))
	assert.Equal(t, CodeRender, GetCode(recoded))
	assert.Equal(t, "open: denied", recoded.Error())
}

func TestGetCode_Unknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}
