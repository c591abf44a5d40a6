package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"unitcalc/app/config"
	"unitcalc/app/lang"
)

// session collects input lines until the tokens seen so far form an
// expression.
type session struct {
	calc   *calc
	parser *lang.Parser
	lines  []string
}

func newSession(c *calc) *session {
	return &session{calc: c, parser: lang.NewParser()}
}

// pending reports whether earlier lines are waiting for more input.
func (s *session) pending() bool { return !s.parser.Empty() }

// feed adds one line of input. Once the buffer parses it is shown and
// cleared, and the joined input is returned for the history.
func (s *session) feed(line string) (string, bool) {
	if strings.TrimSpace(line) == "" && len(s.lines) == 0 {
		return "", false
	}
	s.lines = append(s.lines, line)
	s.parser.Extend(lang.Lex(line)...)
	node, ok := s.parser.Parse()
	if !ok {
		return "", false
	}
	entry := strings.Join(s.lines, " ")
	s.calc.show(node)
	s.reset()
	return entry, true
}

func (s *session) reset() {
	s.lines = s.lines[:0]
	s.parser.Reset()
}

func repl(c *calc, cfg config.REPL) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Printf("read history: %v", err)
			}
			f.Close()
		}
		defer saveHistory(ln, cfg.HistoryFile)
	}

	s := newSession(c)
	for {
		prompt := cfg.Prompt
		if s.pending() {
			prompt = cfg.Continuation
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			// Interrupt drops a pending expression, or leaves when there is none.
			if !s.pending() {
				return
			}
			s.reset()
			continue
		case err != nil:
			log.Printf("read input: %v", err)
			return
		}
		if entry, ok := s.feed(line); ok {
			ln.AppendHistory(entry)
		}
	}
}

func saveHistory(ln *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("write history: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("write history: %v", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		log.Printf("write history: %v", err)
	}
}
