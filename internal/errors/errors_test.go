package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

func TestCodeFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: CodeOK},
		{name: "plain", err: stderrors.New("boom"), want: CodeGeneric},
		{name: "file access", err: &debian.FileAccessError{Op: "open", Err: fs.ErrNotExist}, want: CodeFileAccess},
		{name: "wrapped not found", err: fmt.Errorf("scan: %w", &debian.VersionNotFoundError{}), want: CodeVersionNotFound},
		{name: "signature", err: &debian.SignatureError{Err: stderrors.New("bad")}, want: CodeSignature},
		{name: "invalid version", err: &debian.InvalidVersionError{Version: "x", Err: stderrors.New("bad")}, want: CodeInvalidVersion},
		{name: "custom", err: New(7, "config"), want: 7},
		{name: "custom wrapping domain", err: Wrap(&debian.VersionNotFoundError{}, "extract"), want: CodeVersionNotFound},
		{name: "custom wrapping plain", err: &CustomError{Code: 9, Message: "m", Err: stderrors.New("x")}, want: 9},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CodeFor(tc.err))
		})
	}
}

func TestCustomErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := &debian.FileAccessError{Path: "control", Op: "open", Err: fs.ErrNotExist}
	err := Wrap(cause, "lecture du fichier control")

	assert.Equal(t, CodeFileAccess, err.Code)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "Code 2: lecture du fichier control")
	assert.Equal(t, "Code 1: usage", New(CodeGeneric, "usage").Error())
}
