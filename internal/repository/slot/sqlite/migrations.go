package sqlite

// migration - одна миграция схемы с целевой версией.
type migration struct {
	version int
	sql     string
}

// версии идут подряд, начиная с 1
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
ALTER TABLE slots ADD COLUMN revision INTEGER NOT NULL DEFAULT 0;

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
