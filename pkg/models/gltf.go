package models

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/render"
)

// SaveGLB writes m as a binary glTF file with one mesh, one node and one
// scene. Vertex colors go into COLOR_0; there are no materials.
func SaveGLB(m *Mesh, path string) error {
	if len(m.Faces) == 0 {
		return fmt.Errorf("save glb: mesh %q has no faces", m.Name)
	}

	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	colors := make([][4]uint8, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = vec3f(v.Position)
		normals[i] = vec3f(v.Normal)
		c := v.Color.RGBA()
		colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
	}

	indices := make([]uint16, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) || idx > math.MaxUint16 {
				return fmt.Errorf("save glb: face index %d out of range", idx)
			}
			indices = append(indices, uint16(idx))
		}
	}

	prim := &gltf.Primitive{
		Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
		Attributes: map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
		Mode: gltf.PrimitiveTriangles,
	}

	doc.Meshes = []*gltf.Mesh{{Name: m.Name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

func vec3f(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// LoadGLB loads the triangle primitives of a binary glTF file into one mesh.
// COLOR_0 values that match a glyph color are mapped back to it.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a glTF mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var colors []render.ColorTag
		if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			colors, err = readColorAccessor(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		baseVertex := len(mesh.Vertices)
		for i := range positions {
			v := MeshVertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(colors) {
				v.Color = colors[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{V: [3]int{indices[i], indices[i+1], indices[i+2]}}
			for j := range f.V {
				if f.V[j] < 0 || f.V[j] >= len(positions) {
					return fmt.Errorf("index %d out of range", f.V[j])
				}
				f.V[j] += baseVertex
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = math3d.V3(
			float64(readFloat32(b)),
			float64(readFloat32(b[4:])),
			float64(readFloat32(b[8:])),
		)
	}
	return result, nil
}

// readColorAccessor reads normalized unsigned byte VEC4 colors.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]render.ColorTag, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec4 || accessor.ComponentType != gltf.ComponentUbyte {
		return nil, fmt.Errorf("expected ubyte VEC4, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 4)
	if err != nil {
		return nil, err
	}

	result := make([]render.ColorTag, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = colorTagOf(b[0], b[1], b[2])
	}
	return result, nil
}

// colorTagOf returns the glyph color with exactly this RGB value, or
// NoColor.
func colorTagOf(r, g, b uint8) render.ColorTag {
	for _, tag := range []render.ColorTag{render.Red, render.Green, render.Blue, render.Yellow, render.Magenta, render.Cyan} {
		c := tag.RGBA()
		if c.R == r && c.G == g && c.B == b {
			return tag
		}
	}
	return render.NoColor
}

// readIndices reads index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(uint16(b[0]) | uint16(b[1])<<8)
		default:
			result[i] = int(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		}
	}
	return result, nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// accessorBytes returns the embedded bytes an accessor starts at, and the
// stride between elements. elemSize is the packed element size.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elemSize
	}
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor reads past end of buffer (%d > %d)", end, len(buffer.Data))
	}
	return buffer.Data[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}
