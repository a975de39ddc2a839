package phongdemo

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/gekko3d/phongdemo/phongrt/rt/geom"
)

type AssetId string

// MeshAsset is CPU-side mesh data waiting to be uploaded. The version is
// bumped whenever the data is replaced.
type MeshAsset struct {
	Name    string
	version uint
	data    geom.MeshData
}

func (a MeshAsset) Version() uint       { return a.version }
func (a MeshAsset) Data() geom.MeshData { return a.data }

type AssetServer struct {
	meshes map[AssetId]MeshAsset
	byName map[string]AssetId
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes: make(map[AssetId]MeshAsset),
		byName: make(map[string]AssetId),
	}
}

// LoadMesh registers data under name. Names are unique.
func (server *AssetServer) LoadMesh(name string, data geom.MeshData) (AssetId, error) {
	if _, ok := server.byName[name]; ok {
		return "", fmt.Errorf("mesh %q already loaded", name)
	}
	if err := data.Validate(); err != nil {
		return "", fmt.Errorf("mesh %q: %w", name, err)
	}
	id := makeAssetId()
	server.meshes[id] = MeshAsset{
		Name: name,
		data: data.Clone(),
	}
	server.byName[name] = id
	return id, nil
}

// ReplaceMesh swaps the data of an existing mesh and bumps its version.
func (server *AssetServer) ReplaceMesh(id AssetId, data geom.MeshData) error {
	asset, ok := server.meshes[id]
	if !ok {
		return fmt.Errorf("unknown mesh asset %s", id)
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("mesh %q: %w", asset.Name, err)
	}
	asset.data = data.Clone()
	asset.version++
	server.meshes[id] = asset
	return nil
}

func (server *AssetServer) Mesh(id AssetId) (MeshAsset, bool) {
	a, ok := server.meshes[id]
	return a, ok
}

func (server *AssetServer) MeshId(name string) (AssetId, bool) {
	id, ok := server.byName[name]
	return id, ok
}

// MeshIds returns every mesh id ordered by mesh name.
func (server *AssetServer) MeshIds() []AssetId {
	ids := make([]AssetId, 0, len(server.meshes))
	for id := range server.meshes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return server.meshes[ids[i]].Name < server.meshes[ids[j]].Name
	})
	return ids
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[AssetServer](app); ok {
		return
	}
	app.addResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// meshUploader is the renderer side of mesh syncing.
type meshUploader interface {
	UploadMesh(id string, data geom.MeshData) error
}

// meshSync remembers which asset versions have been uploaded.
type meshSync struct {
	uploaded map[AssetId]uint
}

func newMeshSync() *meshSync {
	return &meshSync{uploaded: make(map[AssetId]uint)}
}

// sync uploads every mesh asset that is new or whose version changed since
// its last upload. Meshes are uploaded under their asset name.
func (s *meshSync) sync(server *AssetServer, up meshUploader) (int, error) {
	n := 0
	for _, id := range server.MeshIds() {
		asset := server.meshes[id]
		if v, ok := s.uploaded[id]; ok && v == asset.version {
			continue
		}
		if err := up.UploadMesh(asset.Name, asset.data); err != nil {
			return n, fmt.Errorf("upload %s: %w", asset.Name, err)
		}
		s.uploaded[id] = asset.version
		n++
	}
	return n, nil
}
