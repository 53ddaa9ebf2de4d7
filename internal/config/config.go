// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the starting camera state and its limits.
// Angles are in degrees.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"`
	MinZoom     float32    `yaml:"min_zoom"`
	MaxZoom     float32    `yaml:"max_zoom"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// LightingConfig holds light placement and slider behaviour.
type LightingConfig struct {
	Fog            bool         `yaml:"fog"`
	Step           float32      `yaml:"step"`
	Max            float32      `yaml:"max"`
	PointPositions [][3]float32 `yaml:"point_positions"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64        `yaml:"master_volume"`
	MusicVolume  float64        `yaml:"music_volume"`
	SFXVolume    float64        `yaml:"sfx_volume"`
	Muted        bool           `yaml:"muted"`
	Music        string         `yaml:"music"`
	ToggleSound  string         `yaml:"toggle_sound"`
	Ambient      []AmbientSound `yaml:"ambient"`
}

// AmbientSound is a looping sound placed in the world.
type AmbientSound struct {
	Path        string     `yaml:"path"`
	Position    [3]float32 `yaml:"position"`
	MinDistance float32    `yaml:"min_distance"`
	Volume      float64    `yaml:"volume"`
}

// AssetsConfig holds asset locations, relative to Root.
type AssetsConfig struct {
	Root   string     `yaml:"root"`
	Skybox [6]string  `yaml:"skybox"`
	Models ModelPaths `yaml:"models"`
}

// ModelPaths names the model file for every mesh the scene draws.
type ModelPaths struct {
	Floor         string `yaml:"floor"`
	Present       string `yaml:"present"`
	SnowmanBody   string `yaml:"snowman_body"`
	ArmLeft       string `yaml:"arm_left"`
	ArmRight      string `yaml:"arm_right"`
	CrowdArmLeft  string `yaml:"crowd_arm_left"`
	CrowdArmRight string `yaml:"crowd_arm_right"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	LogStats      bool   `yaml:"log_stats"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the stock winter scene setup.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "WinterWonderland",
			Width:      900,
			Height:     500,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 2, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       3,
			Sensitivity: 0.15,
			Zoom:        45,
			MinZoom:     1,
			MaxZoom:     45,
			Near:        0.1,
			Far:         100,
		},
		Lighting: LightingConfig{
			Fog:  false,
			Step: 0.05,
			Max:  1,
			PointPositions: [][3]float32{
				{-24.21, 5.19, 0.90},
				{2.3, 3.3, -4.0},
				{-4.0, 2.0, -12.0},
				{10.0, 4.0, -3.0},
			},
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
			Muted:        false,
			Music:        "music/morning.mp3",
			ToggleSound:  "music/beep.mp3",
			Ambient: []AmbientSound{
				{Path: "music/wind.wav", Position: [3]float32{10, 4, -3}, MinDistance: 2, Volume: 0.6},
			},
		},
		Assets: AssetsConfig{
			Root: "assets",
			Skybox: [6]string{
				"sky/right.jpg",
				"sky/left.jpg",
				"sky/top.jpg",
				"sky/bottom.jpg",
				"sky/front.jpg",
				"sky/back.jpg",
			},
			Models: ModelPaths{
				Floor:         "floorModel/ground.gltf",
				Present:       "floorModel/prez.gltf",
				SnowmanBody:   "snowManMatt/snowmanBasic.gltf",
				ArmLeft:       "snowManMatt/leftArm.gltf",
				ArmRight:      "snowManMatt/rightArm.gltf",
				CrowdArmLeft:  "snowManMatt/snowmanBasicLeft.gltf",
				CrowdArmRight: "snowManMatt/snowmanBasicRight.gltf",
			},
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MinZoom >= c.Camera.MaxZoom {
		errs = append(errs, fmt.Errorf("camera: zoom range [%g, %g] is empty", c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Camera.MaxZoom >= 180 {
		errs = append(errs, fmt.Errorf("camera: max_zoom %g must be below 180", c.Camera.MaxZoom))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Lighting.Step <= 0 {
		errs = append(errs, fmt.Errorf("lighting: step must be positive, got %g", c.Lighting.Step))
	}
	if c.Lighting.Max <= 0 {
		errs = append(errs, fmt.Errorf("lighting: max must be positive, got %g", c.Lighting.Max))
	}
	return errors.Join(errs...)
}
