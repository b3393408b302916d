package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/choc/internal/compiler"
	"github.com/roach88/choc/internal/lower"
)

// LoadError is a source-loading failure with its error code.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSource reads a program source file.
func LoadSource(path string) (string, *LoadError) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("source file not found: %s", path)}
	}
	if err != nil {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing source file: %v", err)}
	}
	if info.IsDir() {
		return "", &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("not a file: %s", path)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading source file: %v", err)}
	}
	return string(data), nil
}

// failLoad reports a load error and converts it to the command exit
// code.
func failLoad(formatter *OutputFormatter, loadErr *LoadError) error {
	_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
	return NewExitError(ExitCommandError, loadErr.Error())
}

// failCompile reports a compilation error with the exit code its class
// calls for: source diagnostics are failures, everything else is a
// command error.
func failCompile(formatter *OutputFormatter, err error) error {
	var diags *compiler.Diagnostics
	if errors.As(err, &diags) {
		code := ErrCodeParse
		if diags.Phase == compiler.PhaseCheck {
			code = ErrCodeCheck
		}
		msg := fmt.Sprintf("%s failed with %d error(s)", diags.Phase, len(diags.Errs))
		_ = formatter.Error(code, msg, diags.Messages())
		return NewExitError(ExitFailure, msg)
	}

	var ie *lower.InternalError
	if errors.As(err, &ie) {
		_ = formatter.Error(ErrCodeInternal, ie.Error(), nil)
		return NewExitError(ExitCommandError, ie.Error())
	}

	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return NewExitError(ExitCommandError, err.Error())
}
