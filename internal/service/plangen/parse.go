package plangen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseCandidates decodes a generator payload into candidate tasks.
//
// Parsing is strict-then-lenient: first a direct decode, then a decode of the
// first balanced {...} block (generators wrap JSON in prose more often than
// not). Both the daily shape {tasks:[...]} and the weekly shape
// {weekly_theme, days:[...]} are accepted; for a weekly payload the entry for
// the requested day wins, and if the generator renumbered its days the tasks
// of all days are salvaged instead.
func ParseCandidates(data []byte, day int) ([]CandidateTask, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrGeneratorMalformed)
	}

	if tasks, ok := decodeCandidates([]byte(raw), day); ok {
		return tasks, nil
	}

	// 宽松解析：去掉包裹的文字，只取第一个完整的 JSON 对象
	if block, ok := extractBalancedObject(raw); ok {
		if tasks, ok := decodeCandidates([]byte(block), day); ok {
			return tasks, nil
		}
	}

	return nil, fmt.Errorf("%w: no decodable task list", ErrGeneratorMalformed)
}

func decodeCandidates(data []byte, day int) ([]CandidateTask, bool) {
	var daily GenerationResponse
	if err := json.Unmarshal(data, &daily); err == nil && len(daily.Tasks) > 0 {
		return daily.Tasks, true
	}

	var weekly WeeklyPlanResponse
	if err := json.Unmarshal(data, &weekly); err == nil && len(weekly.Days) > 0 {
		for _, d := range weekly.Days {
			if d.Day == day && len(d.Tasks) > 0 {
				return d.Tasks, true
			}
		}
		var all []CandidateTask
		for _, d := range weekly.Days {
			all = append(all, d.Tasks...)
		}
		if len(all) > 0 {
			return all, true
		}
	}

	return nil, false
}

// extractBalancedObject returns the first balanced top-level {...} block,
// skipping braces inside JSON strings.
func extractBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
