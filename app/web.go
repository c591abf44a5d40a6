//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"unitcalc/app/lang"

	"gioui.org/app"
)

// registerWebCallbacks exposes the sheet to the hosting page: its text, and
// the results of every line for sharing.
func registerWebCallbacks(es *EditorState, st *lang.EvalState, w *app.Window) {
	js.Global().Set("getEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		return es.Editor.Text()
	}))
	js.Global().Set("setEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			es.Editor.SetText(normalizeNewlines(args[0].String()))
			w.Invalidate()
		}
		return nil
	}))
	js.Global().Set("getResults", js.FuncOf(func(this js.Value, args []js.Value) any {
		results := st.EvalAllIncremental(es.Lines())
		texts := make([]string, len(results))
		for i, r := range results {
			texts[i] = r.Text
		}
		return strings.Join(texts, "\n")
	}))

	// Initial text from the URL, decoded by the page before the module started
	initialText := js.Global().Get("_initialText")
	if !initialText.IsUndefined() && !initialText.IsNull() && initialText.String() != "" {
		es.Editor.SetText(normalizeNewlines(initialText.String()))
	}
}
