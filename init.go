package msgtrans

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RunInitWithReader writes .msgtrans.yaml at root from answers read from r.
// Prompts go to w. Empty answers keep the defaults and are left out of the file.
func RunInitWithReader(root string, r io.Reader, w io.Writer) (string, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", absPath)
	}

	scanner := bufio.NewScanner(r)
	ask := func(prompt string) (string, error) {
		fmt.Fprint(w, prompt)
		var answer string
		if scanner.Scan() {
			answer = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return answer, nil
	}

	cfg := &ProjectConfig{}
	if cfg.TranslationRoot, err = ask("Translation root (optional, relative to the project, press Enter to keep files next to interfaces): "); err != nil {
		return "", err
	}
	if cfg.Encoding, err = ask(fmt.Sprintf("Translation file encoding [%s]: ", EncodingUTF8)); err != nil {
		return "", err
	}
	if _, err := propertiesEncoding(cfg.Encoding); err != nil {
		return "", err
	}
	workers, err := ask("Parallel workers (optional, press Enter for one per CPU): ")
	if err != nil {
		return "", err
	}
	if workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 0 {
			return "", errors.New("workers must be a non-negative number")
		}
		cfg.Workers = n
	}
	index, err := ask("Generate locale lookup functions? [Y/n]: ")
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(strings.ToLower(index), "n") {
		off := false
		cfg.Index = &off
	}

	path := ProjectConfigPath(absPath)
	if err := SaveProjectConfig(path, cfg); err != nil {
		return "", fmt.Errorf("save config: %w", err)
	}
	return path, nil
}
