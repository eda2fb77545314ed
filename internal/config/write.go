package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joeycumines/chartview/internal/storage"
)

// SaveOption validates value against s and writes it to the configuration
// file (see GetConfigPath), creating the file and its directory as needed.
// An empty section targets the global options.
func SaveOption(s *ConfigSchema, section, key, value string) error {
	opt := s.Lookup(section, key)
	if opt == nil {
		if section == "" {
			return fmt.Errorf("unknown global option %q", key)
		}
		return fmt.Errorf("unknown field %q for chart type %q", key, section)
	}
	if err := validateOption(opt, value); err != nil {
		return fmt.Errorf("option %q: %w", key, err)
	}
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return SetKeyInFile(path, section, key, value)
}

// SetKeyInFile updates or adds a key in the config file. It preserves
// comments and formatting. An empty section targets the global options;
// otherwise the key is written inside the named [section], which is appended
// when missing. If the key exists in the target section, its line is
// replaced in-place. If not found, the key is inserted at the end of the
// section (for the global section, before the first section header).
func SetKeyInFile(path, section, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(string(data), "\n")
	}

	newLine := key
	if value != "" {
		newLine = key + " " + value
	}

	current := ""
	inTarget := section == ""
	sectionFound := section == ""
	insertIndex := -1
	lastContent := -1 // last non-blank line of the target section

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if inTarget && insertIndex < 0 {
				if section == "" {
					insertIndex = i
				} else {
					insertIndex = lastContent + 1
				}
			}
			current = strings.TrimSpace(strings.Trim(trimmed, "[]"))
			inTarget = current == section
			if inTarget {
				sectionFound = true
				lastContent = i
			}
			continue
		}

		if !inTarget {
			continue
		}
		if trimmed == "" {
			continue
		}
		lastContent = i
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		name, _, _ := strings.Cut(trimmed, " ")
		if name == key {
			lines[i] = newLine
			return writeLines(path, lines)
		}
	}

	switch {
	case !sectionFound:
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, "["+section+"]", newLine, "")
	case insertIndex >= 0:
		lines = slices.Insert(lines, insertIndex, newLine)
	case inTarget && section != "":
		lines = slices.Insert(lines, lastContent+1, newLine)
	default:
		// Global section runs to the end of the file.
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = append(lines[:len(lines)-1], newLine, "")
		} else {
			lines = append(lines, newLine)
		}
	}

	return writeLines(path, lines)
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}
