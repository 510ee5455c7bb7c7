package framework

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Text file types picked up by the context walker. Binary formats in the
// documents directory are ignored rather than rejected.
var contextExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadContext walks a documents directory and returns its contents keyed by
// category. Each immediate subdirectory is a category; each readable text
// file inside it becomes a document. Unreadable files are skipped with a
// warning so a single bad document cannot sink the run.
func LoadContext(docsDir string, logger *zap.Logger) map[string]map[string]string {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make(map[string]map[string]string)

	entries, err := os.ReadDir(docsDir)
	if err != nil {
		logger.Warn("Context directory unavailable", zap.String("dir", docsDir), zap.Error(err))
		return out
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		files, err := os.ReadDir(filepath.Join(docsDir, category))
		if err != nil {
			logger.Warn("Skipping context category", zap.String("category", category), zap.Error(err))
			continue
		}
		docs := make(map[string]string)
		for _, file := range files {
			if file.IsDir() || !contextExtensions[strings.ToLower(filepath.Ext(file.Name()))] {
				continue
			}
			data, err := os.ReadFile(filepath.Join(docsDir, category, file.Name()))
			if err != nil {
				logger.Warn("Skipping context document", zap.String("file", file.Name()), zap.Error(err))
				continue
			}
			docs[file.Name()] = string(data)
		}
		if len(docs) > 0 {
			out[category] = docs
		}
	}

	logger.Info("Loaded context documents", zap.Int("categories", len(out)))
	return out
}
