package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// DatasetUpload holds the schema definition for stored dataset files.
type DatasetUpload struct {
	ent.Schema
}

// Fields of the DatasetUpload.
func (DatasetUpload) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Immutable(),
		field.String("name").
			Immutable(),
		field.String("fingerprint").
			Default(""),
		field.Int("size_bytes").
			Default(0),
		field.Time("uploaded_at"),
	}
}

// Indexes of the DatasetUpload.
func (DatasetUpload) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "name").
			Unique(),
	}
}
