//go:build js && wasm

// Command wasm exposes sheet evaluation to a browser page. Currency
// conversions are unavailable since the page cannot reach the rate service.
package main

import (
	"strings"
	"syscall/js"

	"unitcalc/app/lang"
)

var (
	evalState  = lang.NewEvalState(lang.NewEvaluator(nil))
	editorText string
)

func main() {
	// evaluate(text, exact) returns one {text, isErr} object per line.
	js.Global().Set("evaluate", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		editorText = args[0].String()
		evalState.Exact = len(args) > 1 && args[1].Truthy()

		results := evalState.EvalAllIncremental(strings.Split(editorText, "\n"))

		arr := js.Global().Get("Array").New(len(results))
		for i, r := range results {
			obj := js.Global().Get("Object").New()
			obj.Set("text", r.Text)
			obj.Set("isErr", r.IsErr)
			arr.SetIndex(i, obj)
		}
		return arr
	}))

	// Share links read and restore the sheet text.
	js.Global().Set("getEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		return editorText
	}))
	js.Global().Set("setEditorText", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			editorText = args[0].String()
			ta := js.Global().Get("document").Call("getElementById", "editor")
			if !ta.IsUndefined() && !ta.IsNull() {
				ta.Set("value", editorText)
				ta.Call("dispatchEvent", js.Global().Get("Event").New("input"))
			}
		}
		return nil
	}))

	js.Global().Set("_wasmReady", true)
	onReady := js.Global().Get("_onWasmReady")
	if !onReady.IsUndefined() && !onReady.IsNull() {
		onReady.Invoke()
	}

	select {}
}
