package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const dotenvFilename = ".env"

// readDotEnv parses the nearest .env file found walking up from the working
// directory. Values are returned as a layer and never written to the process
// environment. No file yields an empty layer.
func readDotEnv() (string, map[string]string, error) {
	path, ok, err := findUp(dotenvFilename)
	if err != nil || !ok {
		return "", map[string]string{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", map[string]string{}, nil
		}
		return "", nil, err
	}
	defer file.Close()

	values, err := parseDotEnv(bufio.NewScanner(file))
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return path, values, nil
}

func findUp(filename string) (string, bool, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false, err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func parseDotEnv(scanner *bufio.Scanner) (map[string]string, error) {
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	values := make(map[string]string)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, raw, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("line %d: expected KEY=VALUE", lineNo)
		}
		values[key] = dotenvValue(strings.TrimSpace(raw))
	}
	return values, scanner.Err()
}

// dotenvValue unquotes "double" (with escapes) and 'single' values and drops
// an unquoted trailing " # comment".
func dotenvValue(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		if raw[0] == '"' {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				return unquoted
			}
		}
		return raw[1 : len(raw)-1]
	}
	if idx := strings.Index(raw, " #"); idx >= 0 {
		return strings.TrimSpace(raw[:idx])
	}
	if idx := strings.Index(raw, "\t#"); idx >= 0 {
		return strings.TrimSpace(raw[:idx])
	}
	return raw
}
