package analysis

import (
	"bufio"
	"os"
	"path/filepath"
)

const stopwordPathEnvVar = "IRESEARCH_TEXT_STOPWORD_PATH"

// resolveStopwordsDirs returns every directory that should be consulted
// for stopword files, in precedence order: an explicit path always wins
// outright (the caller skips directory resolution entirely when one is
// given); absent that, the env var and the current working directory
// are both tried, each joined with the locale's language subdirectory,
// and all that exist are merged.
func resolveStopwordsDirs(explicitPath, language string) []string {
	if explicitPath != "" {
		return []string{explicitPath}
	}

	var dirs []string
	if base := os.Getenv(stopwordPathEnvVar); base != "" {
		dirs = append(dirs, filepath.Join(base, language))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(cwd, language))
	}
	return dirs
}

// loadStopwordsDir reads every regular file in dir and merges their
// newline-separated words into set. Missing directories are silently
// skipped (not every candidate in the precedence chain is expected to
// exist); a directory that exists but can't be read is IoFailure.
func loadStopwordsDir(dir string, set map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return newError(IoFailure, "loadStopwordsDir", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := loadStopwordsFile(filepath.Join(dir, entry.Name()), set); err != nil {
			return err
		}
	}
	return nil
}

func loadStopwordsFile(path string, set map[string]bool) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(IoFailure, "loadStopwordsFile", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "" {
			continue
		}
		set[word] = true
	}
	if err := scanner.Err(); err != nil {
		return newError(IoFailure, "loadStopwordsFile", err)
	}
	return nil
}

// resolveStopwords merges an explicit word list with every directory in
// the precedence chain: all applicable sources that exist are merged.
func resolveStopwords(explicit []string, explicitPath, language string) (map[string]bool, error) {
	set := make(map[string]bool, len(explicit))
	for _, w := range explicit {
		set[w] = true
	}

	for _, dir := range resolveStopwordsDirs(explicitPath, language) {
		if err := loadStopwordsDir(dir, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}
