package mesh

import "github.com/go-gl/mathgl/mgl32"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Bounds returns the box around every vertex of the model.
func (m *Model) Bounds() Bounds {
	var b Bounds
	first := true
	for i := range m.Meshes {
		for _, v := range m.Meshes[i].Vertices {
			if first {
				b = Bounds{Min: v.Position, Max: v.Position}
				first = false
				continue
			}
			b.Extend(v.Position)
		}
	}
	return b
}

// FaceNormals sets every vertex normal to the sum of the normals of the
// triangles using it, normalized. Used when a file carries no normals.
func FaceNormals(vertices []Vertex, indices []uint32) {
	sums := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vertices[a].Position, vertices[b].Position, vertices[c].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}
	for i := range vertices {
		if sums[i].Len() > 0 {
			vertices[i].Normal = sums[i].Normalize()
		}
	}
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces the faceted look of meshes with split vertices.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		p := vertices[i].Position
		key := [3]int32{int32(p[0] / epsilon), int32(p[1] / epsilon), int32(p[2] / epsilon)}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vertices[idx].Normal)
		}
		if sum.Len() == 0 {
			continue
		}
		avg := sum.Normalize()
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
