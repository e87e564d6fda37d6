package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MailSource enumerates threads from the mail system. Implementations stand
// in for the real mail service.
type MailSource interface {
	Threads() ([]Thread, error)
}

// DirMailSource reads threads from a directory of JSON files, one thread per
// file. The thread key defaults to the file name (without extension) when
// the file does not carry one.
type DirMailSource struct {
	dir string
}

// NewDirMailSource creates a source over the given directory.
func NewDirMailSource(dir string) *DirMailSource {
	return &DirMailSource{dir: dir}
}

type fileThread struct {
	Key      string        `json:"key"`
	Messages []fileMessage `json:"messages"`
}

type fileMessage struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Date    string `json:"date"`
}

// Threads reads every *.json file in the directory, sorted by file name for
// deterministic processing order. A missing directory yields no threads.
func (s *DirMailSource) Threads() ([]Thread, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mail dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var threads []Thread
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read thread %s: %w", name, err)
		}
		var ft fileThread
		if err := json.Unmarshal(data, &ft); err != nil {
			return nil, fmt.Errorf("parse thread %s: %w", name, err)
		}
		t := Thread{Key: ft.Key}
		if t.Key == "" {
			t.Key = strings.TrimSuffix(name, ".json")
		}
		for _, fm := range ft.Messages {
			d, err := parseMessageDate(fm.Date)
			if err != nil {
				return nil, fmt.Errorf("thread %s: %w", name, err)
			}
			t.Messages = append(t.Messages, Message{
				From:    fm.From,
				Subject: fm.Subject,
				Body:    fm.Body,
				Date:    d,
			})
		}
		threads = append(threads, t)
	}
	return threads, nil
}

func parseMessageDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad message date %q", s)
}
