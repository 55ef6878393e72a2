package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnalysisRun holds the schema definition for the analysis run ledger.
// Codegen target for the postgres backend; the raw-SQL store in
// internal/repository/runlog writes the same table.
type AnalysisRun struct {
	ent.Schema
}

// Fields of the AnalysisRun.
func (AnalysisRun) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Immutable(),
		field.String("session_id").
			Immutable(),
		field.String("cell_id").
			Default(""),
		field.String("kind").
			Default(""),
		field.String("status").
			Default(""),
		field.String("error").
			Default(""),
		field.Time("started_at"),
		field.Time("finished_at").
			Optional(),
	}
}

// Indexes of the AnalysisRun.
func (AnalysisRun) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "run_id").
			Unique(),
		index.Fields("session_id", "started_at"),
	}
}
