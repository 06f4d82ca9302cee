package questionbank

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	blockMarker   = "## Q"
	headingPrefix = "## "

	labelQuestion    = "**Question:**"
	labelOptions     = "**Options:**"
	labelAnswer      = "**Answer:**"
	labelExplanation = "**Explanation:**"

	maxTags = 2
)

type section int

const (
	sectionNone section = iota
	sectionQuestion
	sectionOptions
	sectionAnswer
	sectionExplanation
)

// Parse parses a question bank for one of the built-in domains.
// Use Catalog.Parse for banks registered through a catalog file.
func Parse(source, domain string) ([]Question, error) {
	return DefaultCatalog().Parse(source, domain)
}

// parseBank splits source into "## Q" blocks and parses each of them.
// Anything before the first block is front matter and is ignored.
func parseBank(source, domain string) ([]Question, error) {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	var (
		questions []Question
		block     []string
		start     int
		seen      = make(map[string]int)
	)

	flush := func() error {
		if block == nil {
			return nil
		}
		q, err := parseBlock(domain, start, block)
		if err != nil {
			return err
		}
		if first, dup := seen[q.ID]; dup {
			return &ParseError{
				Domain: domain,
				Line:   start,
				Reason: fmt.Sprintf("duplicate question id %q (first defined on line %d)", q.ID, first),
			}
		}
		seen[q.ID] = start
		questions = append(questions, q)
		return nil
	}

	for i, line := range lines {
		if strings.HasPrefix(line, blockMarker) {
			if err := flush(); err != nil {
				return nil, err
			}
			block = []string{strings.TrimPrefix(line, headingPrefix)}
			start = i + 1
			continue
		}
		if block != nil {
			block = append(block, line)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return questions, nil
}

// parseBlock turns a single block into a Question. lines[0] is the header
// without the heading marker.
func parseBlock(domain string, lineNo int, lines []string) (Question, error) {
	localID, tags, err := parseHeader(lines[0])
	if err != nil {
		return Question{}, &ParseError{Domain: domain, Line: lineNo, Reason: err.Error()}
	}

	q := Question{
		ID:         domain + "-" + localID,
		Domain:     domain,
		Difficulty: DefaultDifficulty,
		Type:       DefaultType,
	}
	if len(tags) > 0 {
		q.Difficulty = tags[0]
	}
	if len(tags) > 1 {
		q.Type = tags[1]
	}

	var (
		current     = sectionNone
		question    []string
		options     []string
		explanation []string
	)

scan:
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, labelQuestion):
			current = sectionQuestion
			question = []string{strings.TrimSpace(strings.TrimPrefix(line, labelQuestion))}
		case strings.HasPrefix(line, labelOptions):
			current = sectionOptions
		case strings.HasPrefix(line, labelAnswer):
			current = sectionAnswer
			q.Answer = strings.TrimSpace(strings.TrimPrefix(line, labelAnswer))
		case strings.HasPrefix(line, labelExplanation):
			current = sectionExplanation
			explanation = []string{strings.TrimSpace(strings.TrimPrefix(line, labelExplanation))}
		case isRule(line):
			break scan
		case strings.TrimSpace(line) == "":
			continue
		case current == sectionQuestion:
			question = append(question, line)
		case current == sectionOptions:
			options = append(options, strings.TrimSpace(line))
		case current == sectionExplanation:
			explanation = append(explanation, strings.TrimSpace(line))
		}
	}

	q.Question = strings.TrimSpace(strings.Join(question, "\n"))
	q.Explanation = strings.TrimSpace(strings.Join(explanation, " "))
	if len(options) > 0 {
		q.Options = options
	}
	return q, nil
}

// parseHeader reads "Q001 [basic] [multiple-choice]". Tags are positional:
// the first is the difficulty and the second the type.
func parseHeader(header string) (string, []string, error) {
	header = strings.TrimSpace(header)

	localID, rest := header, ""
	if i := strings.IndexFunc(header, unicode.IsSpace); i >= 0 {
		localID, rest = header[:i], header[i:]
	}
	if localID == strings.TrimPrefix(blockMarker, headingPrefix) {
		return "", nil, fmt.Errorf("header has no question id")
	}
	if strings.ContainsAny(localID, "[]") {
		return "", nil, fmt.Errorf("malformed question id %q", localID)
	}

	var tags []string
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("unexpected text %q in header", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("unterminated tag %q", rest)
		}
		tag := strings.TrimSpace(rest[1:end])
		if tag == "" {
			return "", nil, fmt.Errorf("empty tag in header")
		}
		tags = append(tags, tag)
		rest = rest[end+1:]
	}
	if len(tags) > maxTags {
		return "", nil, fmt.Errorf("header has %d tags, at most %d allowed", len(tags), maxTags)
	}
	return localID, tags, nil
}

// isRule reports whether line is a horizontal rule made only of dashes.
func isRule(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 3 && strings.Trim(t, "-") == ""
}
