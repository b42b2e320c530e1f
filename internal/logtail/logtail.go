package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one log line with the fields the viewer highlights.
type Entry struct {
	Raw     string
	Time    string
	Level   string
	Message string
}

// Parse splits a logrus line written by the text or JSON formatter. Lines in
// neither shape come back with only Raw and Message set.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return e
	}

	if strings.HasPrefix(trimmed, "{") {
		var fields map[string]any
		if err := json.Unmarshal([]byte(trimmed), &fields); err == nil {
			e.Time, _ = fields["time"].(string)
			e.Level = normalizeLevel(fmt.Sprint(fields["level"]))
			if msg, ok := fields["msg"].(string); ok {
				e.Message = msg
			}
			return e
		}
	}

	for key, value := range textFields(trimmed) {
		switch key {
		case "time":
			e.Time = value
		case "level":
			e.Level = normalizeLevel(value)
		case "msg":
			e.Message = value
		}
	}
	return e
}

// ParseLines parses every line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = Parse(line)
	}
	return out
}

// textFields reads key=value pairs, honouring double-quoted values.
func textFields(line string) map[string]string {
	fields := map[string]string{}
	for len(line) > 0 {
		line = strings.TrimLeft(line, " ")
		eq := strings.IndexByte(line, '=')
		if eq <= 0 || strings.ContainsRune(line[:eq], ' ') {
			break
		}
		key := line[:eq]
		line = line[eq+1:]

		var value string
		if strings.HasPrefix(line, `"`) {
			end := closingQuote(line)
			if end < 0 {
				break
			}
			value = strings.ReplaceAll(line[1:end], `\"`, `"`)
			line = line[end+1:]
		} else {
			sp := strings.IndexByte(line, ' ')
			if sp < 0 {
				sp = len(line)
			}
			value = line[:sp]
			line = line[sp:]
		}
		fields[key] = value
	}
	return fields
}

func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warn", "warning":
		return "warn"
	case "err", "error", "fatal", "panic":
		return "error"
	case "info":
		return "info"
	case "debug", "trace":
		return "debug"
	default:
		return ""
	}
}
