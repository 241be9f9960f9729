package port

// LayoutSchemaProvider renders the JSON Schema of the persisted layout format.
type LayoutSchemaProvider interface {
	// LayoutSchema returns the schema document as indented JSON.
	LayoutSchema() ([]byte, error)
}
