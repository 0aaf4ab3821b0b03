package rcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPackage(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "pkg")
	touch, acc, gyro := exampleChannels()
	_, err := WritePackage(context.Background(), root, exampleManifest(), touch, acc, gyro, WriterOptions{})
	require.NoError(t, err)
	return root
}

func TestVerifyPackageClean(t *testing.T) {
	root := writeTestPackage(t)
	result, err := VerifyPackage(root)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Empty(t, result.Missing)
	assert.Empty(t, result.Mismatches)
}

func TestVerifyPackageDetectsTampering(t *testing.T) {
	root := writeTestPackage(t)
	paths := PackagePaths(root)

	// Flip bytes in two artifacts; both must be reported in one pass.
	require.NoError(t, os.WriteFile(paths.ManifestPath, []byte("{}\n"), 0o644))
	corrupt, err := os.ReadFile(paths.Channels.AccPath)
	require.NoError(t, err)
	corrupt[len(corrupt)-1] ^= 0xff
	require.NoError(t, os.WriteFile(paths.Channels.AccPath, corrupt, 0o644))

	result, err := VerifyPackage(root)
	require.NoError(t, err)
	assert.False(t, result.OK)
	require.Len(t, result.Mismatches, 2)
	assert.Equal(t, ManifestFile, result.Mismatches[0].File)
	assert.Equal(t, AccFile, result.Mismatches[1].File)
	for _, m := range result.Mismatches {
		assert.NotEqual(t, m.Expected, m.Actual)
		assert.Len(t, m.Expected, 64)
		assert.Len(t, m.Actual, 64)
	}
}

func TestVerifyPackageReportsMissingFiles(t *testing.T) {
	root := writeTestPackage(t)
	paths := PackagePaths(root)
	require.NoError(t, os.Remove(paths.Channels.GyroPath))

	result, err := VerifyPackage(root)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, []string{GyroFile}, result.Missing)
}

func TestVerifyPackageWithoutManifestFails(t *testing.T) {
	_, err := VerifyPackage(t.TempDir())
	require.Error(t, err)
}
