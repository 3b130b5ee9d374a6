package aoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DescriptionText returns the plain text of the puzzle's description. Each
// part is a separate article on the page; parts are separated by a blank
// line.
func (p *Puzzle) DescriptionText() (string, error) {
	page, err := p.Description()
	if err != nil {
		return "", err
	}
	return descriptionText(page)
}

func descriptionText(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing description: %w", err)
	}
	var parts []string
	doc.Find("article.day-desc").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, strings.TrimSpace(s.Text()))
	})
	if len(parts) == 0 {
		return "", errors.New("no puzzle description in page")
	}
	return strings.Join(parts, "\n\n"), nil
}
