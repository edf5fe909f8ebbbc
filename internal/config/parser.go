package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	lenserrors "github.com/lensbook/lensbook/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseDocument loads a brand book from disk, validates it, and returns
// the resulting model.
func ParseDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lenserrors.NewParseError(path, 0, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, lenserrors.NewParseError(path, extractLine(err), err)
	}

	sanitizeDocument(&doc)

	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// sanitizeDocument strips control characters from user-visible text so
// document content can never corrupt terminal output.
func sanitizeDocument(doc *Document) {
	for i := range doc.Sections {
		doc.Sections[i].Title = stripControl(doc.Sections[i].Title)
		for j := range doc.Sections[i].Blocks {
			doc.Sections[i].Blocks[j].Text = stripControl(doc.Sections[i].Blocks[j].Text)
		}
	}
	for i := range doc.Sidebar {
		doc.Sidebar[i].Title = stripControl(doc.Sidebar[i].Title)
		for j := range doc.Sidebar[i].Entries {
			doc.Sidebar[i].Entries[j].Label = stripControl(doc.Sidebar[i].Entries[j].Label)
		}
	}
	for i := range doc.Nav {
		doc.Nav[i].Label = stripControl(doc.Nav[i].Label)
	}
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
