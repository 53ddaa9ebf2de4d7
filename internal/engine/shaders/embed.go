// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms textured models for the multi-light pass.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades with one sun, up to eight point lights, a spot light and fog.
//
//go:embed lit.frag
var LitFragmentShader string

// MaterialVertexShader is the vertex shader for untextured material showcase models.
//
//go:embed material.vert
var MaterialVertexShader string

// MaterialFragmentShader is the fragment shader for material showcase models.
//
//go:embed material.frag
var MaterialFragmentShader string

// SkyboxVertexShader is the vertex shader for the cube-mapped sky.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the cube-mapped sky.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
