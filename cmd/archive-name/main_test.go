package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/CeGenreDeChat/archive-name/internal/errors"
	"github.com/CeGenreDeChat/archive-name/internal/version"
	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

// newWorkspace creates a build tree with the control file at its default
// location and makes it the working directory.
func newWorkspace(t *testing.T, control string) string {
	t.Helper()

	dir := t.TempDir()
	if control != "" {
		controlPath := filepath.Join(dir, debian.DefaultControlPath)
		require.NoError(t, os.MkdirAll(filepath.Dir(controlPath), 0o755))
		require.NoError(t, os.WriteFile(controlPath, []byte(control), 0o644))
	}

	chdir(t, dir)
	return dir
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunDefault(t *testing.T) {
	newWorkspace(t, "Package: brain-config\nVersion: 1.2.3\nArchitecture: all\n")

	code, stdout, _ := execute()
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "brain-config_1.2.3_all.deb", stdout)

	code, again, _ := execute()
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, stdout, again)
}

func TestRunMissingControlFile(t *testing.T) {
	newWorkspace(t, "")

	code, stdout, stderr := execute()
	assert.Equal(t, apperrors.CodeFileAccess, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "cannot read control file "+debian.DefaultControlPath)
}

func TestRunVersionNotFound(t *testing.T) {
	newWorkspace(t, "Package: brain-config\nArchitecture: all\n")

	code, stdout, stderr := execute()
	assert.Equal(t, apperrors.CodeVersionNotFound, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Version line was not found")
}

func TestRunFlags(t *testing.T) {
	dir := newWorkspace(t, "")
	controlPath := filepath.Join(dir, "control")
	require.NoError(t, os.WriteFile(controlPath, []byte("Version: 0.4.0-2\n"), 0o644))

	code, stdout, _ := execute("--control", controlPath, "-p", "brain-tools", "--arch", "arm64")
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "brain-tools_0.4.0-2_arm64.deb", stdout)

	code, stdout, _ = execute("show", "-c", controlPath)
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "0.4.0-2", stdout)
}

func TestRunConfigFile(t *testing.T) {
	dir := newWorkspace(t, "Version: 9.9\n")
	settings := filepath.Join(dir, "archive-name.toml")
	require.NoError(t, os.WriteFile(settings, []byte("architecture = \"amd64\"\nstrict = true\n"), 0o600))

	code, stdout, _ := execute("--config", settings)
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "brain-config_9.9_amd64.deb", stdout)

	code, stdout, _ = execute("--config", settings, "--arch", "all")
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "brain-config_9.9_all.deb", stdout)

	require.NoError(t, os.WriteFile(settings, []byte("package = \"brain_config\"\n"), 0o600))
	code, stdout, stderr := execute("--config", settings)
	assert.Equal(t, apperrors.CodeGeneric, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestRunStrict(t *testing.T) {
	newWorkspace(t, "Version: nightly build\n")

	code, stdout, _ := execute()
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "brain-config_nightly build_all.deb", stdout)

	code, stdout, stderr := execute("--strict")
	assert.Equal(t, apperrors.CodeInvalidVersion, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `invalid Debian version "nightly build"`)
}

func TestRunFrenchDiagnostics(t *testing.T) {
	newWorkspace(t, "")

	code, stdout, stderr := execute("--lang", "fr")
	assert.Equal(t, apperrors.CodeFileAccess, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "impossible de lire le fichier control")
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	newWorkspace(t, "Version: 1.0\n")

	code, stdout, stderr := execute("-v")
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, "brain-config_1.0_all.deb", stdout)
	assert.Contains(t, stderr, "version found")
}

func TestRunUsageErrors(t *testing.T) {
	newWorkspace(t, "Version: 1.0\n")

	code, stdout, _ := execute("unexpected")
	assert.Equal(t, apperrors.CodeGeneric, code)
	assert.Empty(t, stdout)

	code, stdout, _ = execute("--no-such-flag")
	assert.Equal(t, apperrors.CodeGeneric, code)
	assert.Empty(t, stdout)
}

func TestRunVersionCommand(t *testing.T) {
	newWorkspace(t, "")

	code, stdout, _ := execute("version")
	assert.Equal(t, apperrors.CodeOK, code)
	assert.Equal(t, version.Full()+"\n", stdout)
}

func TestLookupLang(t *testing.T) {
	assert.Equal(t, "en", lookupLang(nil))
	assert.Equal(t, "fr", lookupLang([]string{"--lang", "fr"}))
	assert.Equal(t, "fr", lookupLang([]string{"-v", "--lang=fr"}))
	assert.Equal(t, "en", lookupLang([]string{"--", "--lang=fr"}))
}

// chdir changes the working directory to dir and restores it when the test
// ends.
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
