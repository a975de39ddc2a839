package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GeneratePlane builds a width x depth grid in the XZ plane at Y=0, centred on
// the origin, facing +Y.
func GeneratePlane(width, depth float32, divisionsX, divisionsZ int) MeshData {
	if divisionsX < 1 {
		divisionsX = 1
	}
	if divisionsZ < 1 {
		divisionsZ = 1
	}

	halfW, halfD := width/2, depth/2
	stepX := width / float32(divisionsX)
	stepZ := depth / float32(divisionsZ)
	uvStepX := 1 / float32(divisionsX)
	uvStepZ := 1 / float32(divisionsZ)
	up := mgl32.Vec3{0, 1, 0}

	mesh := MeshData{
		Vertices: make([]Vertex, 0, (divisionsX+1)*(divisionsZ+1)),
		Indices:  make([]uint32, 0, 6*divisionsX*divisionsZ),
	}

	for z := 0; z <= divisionsZ; z++ {
		for x := 0; x <= divisionsX; x++ {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: mgl32.Vec3{-halfW + float32(x)*stepX, 0, -halfD + float32(z)*stepZ},
				Normal:   up,
				UV:       mgl32.Vec2{float32(x) * uvStepX, float32(z) * uvStepZ},
			})
		}
	}

	row := uint32(divisionsX + 1)
	for z := 0; z < divisionsZ; z++ {
		for x := 0; x < divisionsX; x++ {
			topLeft := uint32(z)*row + uint32(x)
			topRight := topLeft + 1
			bottomLeft := uint32(z+1)*row + uint32(x)
			bottomRight := bottomLeft + 1

			mesh.Indices = append(mesh.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}
	return mesh
}
