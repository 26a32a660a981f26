package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Entry is one line of the JSON log file.
type Entry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
	Err       string
	Raw       string // original line, kept for lines that are not JSON
}

// String renders the entry on one line for the logs command.
func (e Entry) String() string {
	if e.Level == "" && e.Message == "" {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(fmt.Sprintf("%-5s", e.Level)))
	if e.Component != "" {
		b.WriteString(" [" + e.Component + "]")
	}
	b.WriteString(" " + e.Message)
	if e.Err != "" {
		b.WriteString(" err=" + e.Err)
	}
	return b.String()
}

// Tail returns at most maxLines entries from the end of the log at path.
// A missing file yields no entries.
func Tail(fs afero.Fs, path string, maxLines int) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	start := 0
	if count == maxLines {
		start = idx
	}
	entries := make([]Entry, count)
	for i := range entries {
		entries[i] = parseEntry(ring[(start+i)%maxLines])
	}
	return entries, nil
}

func parseEntry(line string) Entry {
	e := Entry{Raw: line}
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return e
	}
	e.Level = stringField(fields, zerolog.LevelFieldName)
	e.Message = stringField(fields, zerolog.MessageFieldName)
	e.Component = stringField(fields, "component")
	e.Err = stringField(fields, zerolog.ErrorFieldName)
	if ts := stringField(fields, zerolog.TimestampFieldName); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Time = t
		}
	}
	return e
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}
