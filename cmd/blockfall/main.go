package main

import (
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/internal/debugui"
	"github.com/plus3/blockfall/internal/game"
)

func main() {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("Blockfall", game.WindowWidth, game.WindowHeight)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	g := game.New(&debugui.Backend{EbitenBackend: backend})

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
