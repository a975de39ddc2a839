package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinSphereSectors = 3
	MinSphereStacks  = 2
)

// GenerateSphere tessellates a UV sphere. Stack i runs from the +Z pole
// (i=0) to the -Z pole (i=stacks); sector j sweeps the full turn and the
// seam column is duplicated so UVs stay continuous.
//
// Polar rows emit a single triangle per sector, so the index count is
// 6*sectors*(stacks-1).
func GenerateSphere(radius float32, sectors, stacks int) MeshData {
	if sectors < MinSphereSectors {
		sectors = MinSphereSectors
	}
	if stacks < MinSphereStacks {
		stacks = MinSphereStacks
	}

	sectorStep := 2 * math32.Pi / float32(sectors)
	stackStep := math32.Pi / float32(stacks)
	invRadius := 1 / radius

	mesh := MeshData{
		Vertices: make([]Vertex, 0, (stacks+1)*(sectors+1)),
		Indices:  make([]uint32, 0, 6*sectors*(stacks-1)),
	}

	for i := 0; i <= stacks; i++ {
		stackAngle := math32.Pi/2 - float32(i)*stackStep
		xy := radius * math32.Cos(stackAngle)
		z := radius * math32.Sin(stackAngle)

		for j := 0; j <= sectors; j++ {
			sectorAngle := float32(j) * sectorStep
			pos := mgl32.Vec3{
				xy * math32.Cos(sectorAngle),
				xy * math32.Sin(sectorAngle),
				z,
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   pos.Mul(invRadius),
				UV:       mgl32.Vec2{float32(j) / float32(sectors), float32(i) / float32(stacks)},
			})
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1

		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				mesh.Indices = append(mesh.Indices, k1, k2, k1+1)
			}
			if i != stacks-1 {
				mesh.Indices = append(mesh.Indices, k1+1, k2, k2+1)
			}
		}
	}
	return mesh
}
