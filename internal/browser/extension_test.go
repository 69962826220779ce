package browser

import (
	"archive/zip"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtensionSourceDirInstall(t *testing.T) {
	src := newTestExtensionDir(t)
	require.NoError(t, ExtensionSourceDir{Path: src}.validate())

	dest := t.TempDir()
	require.NoError(t, ExtensionSourceDir{Path: src}.install(dest))

	_, err := os.Stat(filepath.Join(dest, "controller@foxdrift", "manifest.json"))
	require.NoError(t, err)
}

func TestExtensionSourceDirValidateRejectsMissingManifest(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, ExtensionSourceDir{Path: dir}.validate())
}

func newTestXPI(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ext.xpi")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	manifest, err := w.Create("manifest.json")
	require.NoError(t, err)
	_, err = manifest.Write([]byte(`{"browser_specific_settings":{"gecko":{"id":"controller@foxdrift"}}}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func TestExtensionSourceXPIInstall(t *testing.T) {
	path := newTestXPI(t)
	require.NoError(t, ExtensionSourceXPI{Path: path}.validate())

	dest := t.TempDir()
	require.NoError(t, ExtensionSourceXPI{Path: path}.install(dest))

	_, err := os.Stat(filepath.Join(dest, "controller@foxdrift", "manifest.json"))
	require.NoError(t, err)
}

func TestExtensionSourceBase64Install(t *testing.T) {
	path := newTestXPI(t)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	src := ExtensionSourceBase64{Data: base64.StdEncoding.EncodeToString(raw)}
	require.NoError(t, src.validate())

	dest := t.TempDir()
	require.NoError(t, src.install(dest))
	_, err = os.Stat(filepath.Join(dest, "controller@foxdrift", "manifest.json"))
	require.NoError(t, err)
}

func TestExtensionSourceBase64ValidateRejectsGarbage(t *testing.T) {
	require.Error(t, ExtensionSourceBase64{Data: "not-base64!!"}.validate())
}
