// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PieceVertexShader is the vertex shader for figure pieces and label markers.
//
//go:embed piece.vert
var PieceVertexShader string

// PieceFragmentShader is the fragment shader for figure pieces and label markers.
//
//go:embed piece.frag
var PieceFragmentShader string
