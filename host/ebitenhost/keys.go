package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/game"
)

// TranslateKey maps an Ebiten key to a game key. Ebiten names its keys the
// way browsers do ("ArrowLeft", "Space"), so the name is parsed directly.
func TranslateKey(key ebiten.Key) (game.Key, bool) {
	return game.ParseKey(key.String())
}

func isQuitKey(key ebiten.Key) bool {
	return key == ebiten.KeyEscape
}

func isAcknowledgeKey(key ebiten.Key) bool {
	return key == ebiten.KeyEnter || key == ebiten.KeySpace || key == ebiten.KeyEscape
}
