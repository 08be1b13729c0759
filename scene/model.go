package scene

// Model is a loaded asset: geometry plus the texture its uvs refer to.
type Model struct {
	Mesh    *Mesh
	Texture *Texture
}

// Instantiate creates a node drawing the model.
func (m *Model) Instantiate(name string) *Node {
	n := NewNode(name, m.Mesh)
	n.Texture = m.Texture
	return n
}
