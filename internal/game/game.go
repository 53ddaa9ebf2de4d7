// Package game runs the frame loop: input, session update, draw, present.
package game

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/assets"
	"github.com/Faultbox/wonderland/internal/config"
	"github.com/Faultbox/wonderland/internal/engine/audio"
	"github.com/Faultbox/wonderland/internal/engine/debug"
	"github.com/Faultbox/wonderland/internal/engine/input"
	"github.com/Faultbox/wonderland/internal/engine/model"
	"github.com/Faultbox/wonderland/internal/engine/render"
	"github.com/Faultbox/wonderland/internal/engine/renderer"
	"github.com/Faultbox/wonderland/internal/engine/shader"
	"github.com/Faultbox/wonderland/internal/engine/shaders"
	"github.com/Faultbox/wonderland/internal/engine/window"
	"github.com/Faultbox/wonderland/internal/logger"
	"github.com/Faultbox/wonderland/internal/wonderland"
)

// Game owns every resource of a running scene.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Tracker

	files    *assets.Manager
	loader   *model.Loader
	models   []*model.Model
	sky      *model.Skybox
	programs []*shader.Program
	audio    *audio.Manager

	session     *wonderland.Session
	frame       wonderland.Assets
	screenshots *debug.ScreenshotCapture
}

// New opens the window and loads the scene. Window, GL and shader failures
// are fatal; missing models, textures and sounds are logged and skipped.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		config:      cfg,
		input:       input.NewTracker(),
		files:       assets.NewManager(),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "wonderland"),
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:        cfg.Graphics.Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := g.loadPrograms(); err != nil {
		g.Close()
		return nil, err
	}

	if err := g.files.AddDir(cfg.Assets.Root); err != nil {
		logger.Warn("asset root unavailable", zap.Error(err))
	}
	g.loader = model.NewLoader(g.files)
	if err := g.loadAssets(); err != nil {
		logger.Warn("scene incomplete", zap.Int("failures", len(multierr.Errors(err))), zap.Error(err))
	}

	var sounds wonderland.Sounds
	if g.startAudio() {
		sounds = g.audio
	}

	g.session, err = wonderland.NewSession(cfg, sounds)
	if err != nil {
		g.Close()
		return nil, err
	}

	logger.Info("initialized")
	return g, nil
}

func (g *Game) loadPrograms() error {
	sources := []struct {
		name       string
		vert, frag string
		dst        *render.Program
	}{
		{"lit", shaders.LitVertexShader, shaders.LitFragmentShader, &g.frame.Lit},
		{"material", shaders.MaterialVertexShader, shaders.MaterialFragmentShader, &g.frame.Material},
		{"skybox", shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader, &g.frame.Sky},
	}
	for _, s := range sources {
		p, err := shader.Load(s.name, s.vert, s.frag)
		if err != nil {
			return fmt.Errorf("loading %s program: %w", s.name, err)
		}
		g.programs = append(g.programs, p)
		*s.dst = p
	}
	return nil
}

// loadAssets loads every model and the sky. All failures are returned
// together; whatever loaded is drawn.
func (g *Game) loadAssets() error {
	var errs error

	paths := wonderland.ModelPaths(g.config.Assets.Models)
	g.frame.Models = make(map[string]render.Drawable, len(paths))
	for _, key := range slices.Sorted(maps.Keys(paths)) {
		m, err := g.loader.Load(paths[key])
		if err != nil {
			logger.Warn("model load failed", zap.String("model", key), zap.String("path", paths[key]), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		g.models = append(g.models, m)
		g.frame.Models[key] = m
	}

	g.sky = model.NewSkybox(g.config.Assets.Skybox, g.files)
	g.frame.Skybox = g.sky
	if missing := len(g.config.Assets.Skybox) - g.sky.Faces(); missing > 0 {
		errs = multierr.Append(errs, fmt.Errorf("skybox: %d faces missing", missing))
	}
	return errs
}

// startAudio opens the device and starts the music and ambient sounds.
// It reports whether audio is available.
func (g *Game) startAudio() bool {
	ac := g.config.Audio
	if ac.Muted {
		logger.Info("audio muted")
		return false
	}

	g.audio = audio.New(g.files, audio.Settings{
		Master: ac.MasterVolume,
		Music:  ac.MusicVolume,
		SFX:    ac.SFXVolume,
	})
	if err := g.audio.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		g.audio = nil
		return false
	}

	var errs error
	if ac.Music != "" {
		errs = multierr.Append(errs, g.audio.PlayLooping(ac.Music))
	}
	for _, a := range ac.Ambient {
		s, err := g.audio.PlayPositional(a.Path, mgl32.Vec3(a.Position))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.SetMinDistance(a.MinDistance)
		s.SetVolume(a.Volume)
	}
	if errs != nil {
		logger.Warn("some sounds failed to start", zap.Error(errs))
	}
	return true
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	if g.session == nil {
		return errNoScene
	}
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameStats render.Stats

	logger.Info("starting frame loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		g.window.PollEvents(g.input)
		f := g.input.Frame()
		if f.Resized {
			g.renderer.Resize(f.Width, f.Height)
		}

		// 2. Update
		ev := g.session.Update(&f, dt)
		if ev.Quit {
			g.running = false
			break
		}

		// 3. Draw
		list := wonderland.BuildFrame(g.session, &g.frame, g.session.Elapsed(), g.renderer.Aspect())
		frameStats = render.Execute(g.renderer, list)

		if ev.Screenshot {
			g.screenshot()
		}

		// 4. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Debug.LogStats {
				logger.Debug("frame stats",
					zap.Int("fps", frameCount),
					zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
					zap.Int("draws", frameStats.Draws),
					zap.Int("skipped", frameStats.Skipped),
					zap.Bool("fog", g.session.Lights.Fog),
				)
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	name, err := g.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

// Close releases every resource. It is safe on a partly initialized game.
func (g *Game) Close() {
	logger.Info("closing")

	if g.audio != nil {
		g.audio.Close()
	}
	for _, m := range g.models {
		m.Delete()
	}
	g.models = nil
	if g.sky != nil {
		g.sky.Delete()
	}
	if g.loader != nil {
		g.loader.Close()
	}
	for _, p := range g.programs {
		p.Delete()
	}
	g.programs = nil
	if g.files != nil {
		g.files.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}

// errNoScene is returned by Run when New did not finish.
var errNoScene = errors.New("scene not initialized")
