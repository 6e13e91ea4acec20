package main

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/showcase/pkg/scene"
)

// keyAliases maps alternative key spellings onto scene key names.
var keyAliases = map[string]string{
	"shift+/": "?",
	"escape":  "esc",
}

var keyNames = append(append([]string{}, scene.Keys...), "shift+/", "escape")

// translate converts a terminal event into a scene event.
func translate(ev uv.Event) (scene.Event, bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		return scene.Resize{Cols: ev.Width, Rows: ev.Height}, true

	case uv.KeyPressEvent:
		for _, name := range keyNames {
			if !ev.MatchString(name) {
				continue
			}
			if alias, ok := keyAliases[name]; ok {
				name = alias
			}
			return scene.Key{Name: name}, true
		}

	case uv.MouseClickEvent:
		return scene.PointerDown{X: ev.X, Y: ev.Y}, true

	case uv.MouseReleaseEvent:
		return scene.PointerUp{X: ev.X, Y: ev.Y}, true

	case uv.MouseMotionEvent:
		return scene.PointerMove{X: ev.X, Y: ev.Y}, true

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			return scene.Wheel{Delta: -1}, true
		case uv.MouseWheelDown:
			return scene.Wheel{Delta: 1}, true
		}
	}
	return nil, false
}
