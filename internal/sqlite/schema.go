package sqlite

// Schema DDL. The database is a disposable query index rebuilt from the
// JSONL source of truth at every Attach.
const createRepresentations = `CREATE TABLE representations (
    representation_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    trait_count INTEGER NOT NULL,
    traits TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// schemaDDL lists all statements executed at Attach.
var schemaDDL = []string{
	createRepresentations,
}
