package rcp

import "path/filepath"

// Relative artifact paths within a package root. checksums.txt always
// lists artifacts under these names with forward slashes, regardless of
// the host separator.
const (
	ManifestFile  = "manifest.json"
	IndexFile     = "index.json"
	ChecksumsFile = "checksums.txt"
	TouchFile     = "channels/touch.pbz"
	AccFile       = "channels/acc.pbz"
	GyroFile      = "channels/gyro.pbz"
)

// ChannelArtifacts holds the absolute paths of the compressed channel files.
type ChannelArtifacts struct {
	TouchPath string
	AccPath   string
	GyroPath  string
}

// Paths holds the absolute locations of every artifact in a package.
type Paths struct {
	Root          string
	Channels      ChannelArtifacts
	ManifestPath  string
	IndexPath     string
	ChecksumsPath string
}

// PackagePaths returns the fixed package layout rooted at root. It is a
// pure path helper and performs no I/O.
func PackagePaths(root string) Paths {
	channelsDir := filepath.Join(root, "channels")
	return Paths{
		Root: root,
		Channels: ChannelArtifacts{
			TouchPath: filepath.Join(channelsDir, "touch.pbz"),
			AccPath:   filepath.Join(channelsDir, "acc.pbz"),
			GyroPath:  filepath.Join(channelsDir, "gyro.pbz"),
		},
		ManifestPath:  filepath.Join(root, ManifestFile),
		IndexPath:     filepath.Join(root, IndexFile),
		ChecksumsPath: filepath.Join(root, ChecksumsFile),
	}
}
