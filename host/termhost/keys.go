package termhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
)

var keyMap = map[tcell.Key]game.Key{
	tcell.KeyLeft:  game.KeyLeft,
	tcell.KeyRight: game.KeyRight,
	tcell.KeyDown:  game.KeyDown,
	tcell.KeyUp:    game.KeyUp,
}

// TranslateKey maps a tcell key event to a game key.
func TranslateKey(ev *tcell.EventKey) (game.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		return game.ParseKey(string(ev.Rune()))
	}
	key, ok := keyMap[ev.Key()]
	return key, ok
}

func isQuitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}
