// Package scene is the render graph the wave animation draws into.
//
// It owns a fixed-capacity arena of line primitives, a camera, and a small
// software pipeline:
//
//	Scene → View → Projection → Clip → Rasterize (lines) → Target.
//
// Line buffers are allocated once per slot and rewritten in place every frame;
// the renderer keeps its scratch buffers between frames, so steady-state
// rendering does not allocate.
//
// Targets only need SetPixel/Clear. Targets that can stroke vectors natively
// (the ebiten window) implement LineTarget and get antialiased strokes instead
// of Bresenham lines.
//
// Surface models the host graphics context's loss/restore lifecycle.
package scene
