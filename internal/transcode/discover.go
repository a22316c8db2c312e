package transcode

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// audioExts are the input formats accepted for standardization.
var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".flac": true,
	".3gp":  true,
}

// DiscoverAudio walks root recursively and returns all audio files with
// a recognized extension, sorted for a stable processing order.
func DiscoverAudio(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if audioExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
