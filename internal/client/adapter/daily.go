package adapter

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
)

// Daily adapts the detailed single-day report. The score object is required.
func Daily(raw []byte) (*models.DailyFortune, error) {
	root, err := parseObject("daily", raw)
	if err != nil {
		return nil, err
	}
	score, err := requireObject("daily", root, "score")
	if err != nil {
		return nil, err
	}

	text := str(root, "text", "")
	return &models.DailyFortune{
		UID:  str(root, "uid", ""),
		Date: str(root, "date", ""),
		GanZhi: models.GanZhi{
			Year:  str(root, "gz.year", ""),
			Month: str(root, "gz.month", ""),
			Day:   str(root, "gz.day", ""),
		},
		Scores:   labelledScores(score),
		Text:     text,
		Sections: Sections(text),
	}, nil
}

// isSectionMark reports pictographs in U+1F300..U+1FAFF, which the service
// uses as section headers inside the report text.
func isSectionMark(r rune) bool {
	return r >= 0x1F300 && r <= 0x1FAFF
}

// Sections splits report text into blocks keyed by their leading pictograph.
// The header line itself is dropped and the remaining lines are trimmed,
// with blanks removed. When a pictograph repeats, the first block wins.
func Sections(text string) map[string][]string {
	type mark struct {
		at   int
		sym  string
		size int
	}
	var marks []mark
	for i, r := range text {
		if isSectionMark(r) {
			marks = append(marks, mark{at: i, sym: string(r), size: utf8.RuneLen(r)})
		}
	}

	out := make(map[string][]string, len(marks))
	for n, m := range marks {
		if _, seen := out[m.sym]; seen {
			continue
		}
		end := len(text)
		if n+1 < len(marks) {
			end = marks[n+1].at
		}

		lines := strings.Split(text[m.at:end], "\n")
		body := make([]string, 0, len(lines))
		for _, line := range lines[1:] {
			if line = strings.TrimSpace(line); line != "" {
				body = append(body, line)
			}
		}
		out[m.sym] = body
	}
	return out
}
