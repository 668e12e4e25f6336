package main

import (
	"log"

	"github.com/hubastard/ember/engine/colors"
	"github.com/hubastard/ember/engine/core"
	"github.com/hubastard/ember/engine/gfx/batch"
	glbackend "github.com/hubastard/ember/engine/gfx/gl"
	"github.com/hubastard/ember/engine/platform"
	"github.com/hubastard/ember/engine/text"
)

type App struct {
	backend *glbackend.Backend
	font    *text.Font
}

func (a *App) OnStart(e *core.Engine) {
	r := a.backend.Renderer()

	a.font, _ = text.LoadTTF(a.backend, "RobotoMono.ttf", 32)
	if a.font == nil {
		log.Println("no font found under assets/fonts; text overlay disabled")
	}

	e.Layers.Push(&Layer2D{r: r})
	e.Layers.Push(&LayerDebug{r: r, font: a.font})
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}
func (a *App) OnShutdown(e *core.Engine) {
	if a.font != nil {
		a.font.Close()
	}
}

func main() {
	cfg := core.Config{
		Title:      "Ember Sandbox",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
	}
	app := &App{}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		be, err := glbackend.New(batch.Config{})
		if err != nil {
			return nil, err
		}
		app.backend = be
		return be, nil
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
