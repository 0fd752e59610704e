// Package quarkgl is a small software 3D renderer used to draw the book cosmos.
//
// It covers what the view needs and little else: a perspective camera, orbit
// controls that can be locked while the camera is animated, textured-looking
// flat quads with per-panel opacity, and a pick buffer that maps screen
// pixels back to the mesh drawn there.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// The renderer draws into a caller-provided Target and avoids allocations in
// the render hot path once buffers are sized.
package quarkgl
