package store

// schemaDDL creates all tables. Catalog tables reference each other with
// foreign keys; run-fact tables reference the catalog by bare name only, so
// imported history outlives any later catalog rebuild.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS targets(
	name       TEXT PRIMARY KEY,
	parent     TEXT NOT NULL,
	vendor     TEXT NOT NULL,
	family     TEXT NOT NULL,
	sub_family TEXT NOT NULL,
	public     INTEGER NOT NULL,
	core_arch  TEXT NOT NULL,
	core_fpu   INTEGER NOT NULL,
	core_mpu   INTEGER NOT NULL,
	core_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS target_memories(
	target     TEXT NOT NULL REFERENCES targets(name),
	name       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	start      INTEGER NOT NULL,
	size       INTEGER NOT NULL,
	access     TEXT NOT NULL,
	startup    INTEGER NOT NULL,
	is_default INTEGER NOT NULL,
	UNIQUE(target, name)
);

CREATE TABLE IF NOT EXISTS target_sectors(
	target        TEXT NOT NULL REFERENCES targets(name),
	seq           INTEGER NOT NULL,
	sector_offset INTEGER NOT NULL,
	sector_size   INTEGER NOT NULL,
	UNIQUE(target, seq)
);

CREATE TABLE IF NOT EXISTS target_algorithms(
	target     TEXT NOT NULL REFERENCES targets(name),
	seq        INTEGER NOT NULL,
	file       TEXT NOT NULL,
	ram_start  INTEGER NOT NULL,
	ram_size   INTEGER NOT NULL,
	start      INTEGER NOT NULL,
	size       INTEGER NOT NULL,
	is_default INTEGER NOT NULL,
	UNIQUE(target, seq)
);

CREATE TABLE IF NOT EXISTS features(
	name          TEXT PRIMARY KEY,
	define        TEXT NOT NULL,
	friendly_name TEXT NOT NULL,
	description   TEXT NOT NULL,
	hidden        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS target_features(
	target  TEXT NOT NULL REFERENCES targets(name),
	feature TEXT NOT NULL REFERENCES features(name),
	UNIQUE(target, feature)
);

CREATE TABLE IF NOT EXISTS test_cases(
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS test_runs(
	target      TEXT NOT NULL,
	test_case   TEXT NOT NULL,
	attempt     INTEGER NOT NULL,
	outcome     TEXT NOT NULL,
	reason      TEXT NOT NULL,
	placeholder INTEGER NOT NULL,
	batch       TEXT NOT NULL,
	UNIQUE(target, test_case, attempt)
);

CREATE TABLE IF NOT EXISTS test_results(
	target    TEXT NOT NULL,
	test_case TEXT NOT NULL,
	outcome   TEXT NOT NULL,
	reason    TEXT NOT NULL,
	UNIQUE(target, test_case)
);
`
