package shader

import _ "embed"

// MeshVertex is the vertex shader for lit, optionally textured meshes.
//
//go:embed glsl/mesh.vert
var MeshVertex string

// MeshFragment is the fragment shader for lit, optionally textured meshes.
//
//go:embed glsl/mesh.frag
var MeshFragment string

// LinesVertex is the vertex shader for debug line overlays.
//
//go:embed glsl/lines.vert
var LinesVertex string

// LinesFragment is the fragment shader for debug line overlays.
//
//go:embed glsl/lines.frag
var LinesFragment string
