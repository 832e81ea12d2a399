package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

// Process exit codes.
const (
	CodeOK              = 0
	CodeGeneric         = 1
	CodeFileAccess      = 2
	CodeVersionNotFound = 3
	CodeSignature       = 4
	CodeInvalidVersion  = 5
)

// CustomError représente une erreur personnalisée pour l'application.
type CustomError struct {
	Code    int
	Message string
	Err     error
}

// New crée une nouvelle instance de CustomError.
func New(code int, message string) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

// Wrap attache err à une CustomError dont le code dépend du type d'erreur.
func Wrap(err error, message string) *CustomError {
	return &CustomError{
		Code:    CodeFor(err),
		Message: message,
		Err:     err,
	}
}

// Error implémente l'interface error pour CustomError.
func (e *CustomError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("Code %d: %s: %v", e.Code, e.Message, e.Err)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// CodeFor retourne le code de sortie associé à err.
func CodeFor(err error) int {
	if err == nil {
		return CodeOK
	}

	var custom *CustomError
	if stderrors.As(err, &custom) && custom.Err == nil {
		return custom.Code
	}

	var (
		access    *debian.FileAccessError
		notFound  *debian.VersionNotFoundError
		signature *debian.SignatureError
		invalid   *debian.InvalidVersionError
	)
	switch {
	case stderrors.As(err, &signature):
		return CodeSignature
	case stderrors.As(err, &access):
		return CodeFileAccess
	case stderrors.As(err, &notFound):
		return CodeVersionNotFound
	case stderrors.As(err, &invalid):
		return CodeInvalidVersion
	case custom != nil:
		return custom.Code
	default:
		return CodeGeneric
	}
}
