// Package geom holds the small amount of 3D math the display configuration
// needs: field-of-view rectangles, eye offsets, poses and projection
// matrices.
//
// Vectors, quaternions and matrices are the mgl64 types. Matrices are
// column-major, as in OpenGL; use At and Set for row/column access.
package geom
