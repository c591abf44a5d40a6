//go:build !(js && wasm)

package main

import (
	"unitcalc/app/lang"

	"gioui.org/app"
)

func registerWebCallbacks(*EditorState, *lang.EvalState, *app.Window) {}
