package main

import (
	"io"

	"gioui.org/x/explorer"
)

// sheetExtensions are offered by the open dialog.
var sheetExtensions = []string{".calc", ".txt"}

const defaultSheetName = "untitled.calc"

// FileResult holds the contents of a sheet picked in the open dialog.
type FileResult struct {
	Data []byte
	Err  error
}

type SaveResult struct {
	Err error
}

// OpenFileAsync runs the open dialog in a goroutine and sends the sheet read
// from the chosen file.
func OpenFileAsync(expl *explorer.Explorer) <-chan FileResult {
	ch := make(chan FileResult, 1)
	go func() {
		file, err := expl.ChooseFile(sheetExtensions...)
		if err != nil {
			ch <- FileResult{Err: err}
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		ch <- FileResult{Data: data, Err: err}
	}()
	return ch
}

// SaveFileAsync runs the save dialog in a goroutine and writes the sheet to
// the chosen file.
func SaveFileAsync(expl *explorer.Explorer, content []byte) <-chan SaveResult {
	ch := make(chan SaveResult, 1)
	go func() {
		w, err := expl.CreateFile(defaultSheetName)
		if err != nil {
			ch <- SaveResult{Err: err}
			return
		}
		_, err = w.Write(content)
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
		ch <- SaveResult{Err: err}
	}()
	return ch
}
