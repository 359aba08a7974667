package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter represents YAML frontmatter.
type Frontmatter struct {
	Title   string
	Tags    []string
	Status  string
	Raw     map[string]any
	EndLine int // number of lines taken by the block, closing --- included
}

// ExtractFrontmatter parses YAML frontmatter from markdown content.
// Supports the common --- delimited format. A block that is unclosed or
// not valid YAML yields nil.
func ExtractFrontmatter(content []byte) *Frontmatter {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	// First line must be ---
	if !scanner.Scan() {
		return nil
	}
	if strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	var body strings.Builder
	lineNum := 1
	endLine := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			endLine = lineNum
			break
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if endLine == 0 {
		return nil // unclosed frontmatter
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal([]byte(body.String()), &raw); err != nil {
		return nil
	}
	if raw == nil {
		raw = map[string]any{}
	}

	fm := &Frontmatter{
		Raw:     raw,
		EndLine: endLine,
		Title:   scalarString(raw["title"]),
		Status:  scalarString(raw["status"]),
		Tags:    tagList(raw["tags"]),
	}
	return fm
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

// tagList accepts both a YAML sequence and a comma separated string.
func tagList(v any) []string {
	var tags []string
	switch v := v.(type) {
	case []any:
		for _, t := range v {
			if s := scalarString(t); s != "" {
				tags = append(tags, s)
			}
		}
	case string:
		for _, t := range strings.Split(v, ",") {
			if s := strings.TrimSpace(t); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags
}
