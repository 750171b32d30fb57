package cli

import (
	"errors"

	"github.com/figlift/figlift/internal/fig"
	"github.com/figlift/figlift/internal/kiwi"
	"github.com/figlift/figlift/internal/tree"
)

// ErrCodeGeneric is the fallback error code for failures with no typed code
// of their own (I/O, missing decoder).
const ErrCodeGeneric = "ERROR"

// errorCode maps a pipeline error to the stable string code shown in
// structured output. Typed errors from the core carry their own codes;
// everything else is generic.
func errorCode(err error) string {
	if code := fig.CodeOf(err); code != "" {
		return string(code)
	}
	var be *tree.BuildError
	if errors.As(err, &be) {
		return string(be.Code)
	}
	var noRoot *kiwi.ErrNoRootMessage
	if errors.As(err, &noRoot) {
		return "NO_ROOT_MESSAGE"
	}
	var de *kiwi.DecodeError
	if errors.As(err, &de) {
		return "DECODE_ERROR"
	}
	return ErrCodeGeneric
}
