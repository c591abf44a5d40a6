package main

import (
	"os"
	"path/filepath"
	"strings"

	"gioui.org/widget"
)

// EditorState holds the sheet being edited and where it is stored.
type EditorState struct {
	Editor   widget.Editor
	FilePath string
	Dirty    bool
}

func NewEditorState() *EditorState {
	es := &EditorState{}
	es.Editor.SingleLine = false
	es.Editor.Submit = false
	return es
}

// Lines returns the sheet split into lines; an empty sheet has one line.
func (es *EditorState) Lines() []string {
	return strings.Split(es.Editor.Text(), "\n")
}

func (es *EditorState) LineCount() int {
	return strings.Count(es.Editor.Text(), "\n") + 1
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// LoadFile reads a sheet into the editor.
func (es *EditorState) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	es.Editor.SetText(normalizeNewlines(string(data)))
	es.FilePath = path
	es.Dirty = false
	return nil
}

func (es *EditorState) SaveFile(path string) error {
	if err := os.WriteFile(path, []byte(es.Editor.Text()), 0o644); err != nil {
		return err
	}
	es.FilePath = path
	es.Dirty = false
	return nil
}

// Title is the window title: file name, a leading star when modified.
func (es *EditorState) Title() string {
	name := "untitled"
	if es.FilePath != "" {
		name = filepath.Base(es.FilePath)
	}
	if es.Dirty {
		name = "* " + name
	}
	return name + " - unitcalc"
}
