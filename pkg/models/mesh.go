// Package models turns the cube into a triangle mesh and moves meshes in and
// out of binary glTF files.
package models

import (
	"github.com/taigrr/cube/pkg/cube"
	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/render"
)

// Mesh represents a triangle mesh with per-vertex colors.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on build and load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Color    render.ColorTag
}

// Face represents a triangle face with counter-clockwise vertex indices when
// seen from outside.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CubeMesh builds c as 6 quads of 4 vertices each, colored like the
// terminal rendering. Vertices are not shared between faces so every face
// keeps its own color and normal.
func CubeMesh(c cube.Cube) *Mesh {
	m := NewMesh("cube")
	w := c.HalfWidth

	for _, f := range cube.Faces {
		base := len(m.Vertices)
		corners := [4]math3d.Vec3{
			f.Point(-w, -w, w),
			f.Point(w, -w, w),
			f.Point(w, w, w),
			f.Point(-w, w, w),
		}
		for _, p := range corners {
			m.Vertices = append(m.Vertices, MeshVertex{Position: p, Color: f.Color})
		}

		// Flip the quad if its winding faces inward.
		center := corners[0].Add(corners[2]).Scale(0.5)
		n := corners[1].Sub(corners[0]).Cross(corners[3].Sub(corners[0]))
		if n.Dot(center) < 0 {
			m.Faces = append(m.Faces,
				Face{V: [3]int{base, base + 2, base + 1}},
				Face{V: [3]int{base, base + 3, base + 2}})
		} else {
			m.Faces = append(m.Faces,
				Face{V: [3]int{base, base + 1, base + 2}},
				Face{V: [3]int{base, base + 2, base + 3}})
		}
	}

	m.CalculateNormals()
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals computes face normals and assigns them to vertices.
// This is a flat-shading approach: each face must own its vertices.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// Transform applies a rotation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}
