package store

const catalogSchema = `
CREATE TABLE IF NOT EXISTS beatmaps (
	hash           TEXT PRIMARY KEY,
	path           TEXT NOT NULL,
	format_version INTEGER NOT NULL,
	mode           SMALLINT NOT NULL,
	title          TEXT NOT NULL,
	artist         TEXT NOT NULL,
	creator        TEXT NOT NULL,
	version        TEXT NOT NULL,
	source         TEXT NOT NULL,
	tags           TEXT[] NOT NULL DEFAULT '{}',
	beatmap_id     INTEGER NOT NULL,
	beatmapset_id  INTEGER NOT NULL,
	hp             DOUBLE PRECISION NOT NULL,
	cs             DOUBLE PRECISION NOT NULL,
	od             DOUBLE PRECISION NOT NULL,
	ar             DOUBLE PRECISION NOT NULL,
	objects        INTEGER NOT NULL,
	length_ms      INTEGER NOT NULL,
	min_bpm        DOUBLE PRECISION NOT NULL,
	max_bpm        DOUBLE PRECISION NOT NULL,
	canonical      TEXT NOT NULL,
	indexed_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS beatmaps_creator_idx ON beatmaps (creator);
CREATE INDEX IF NOT EXISTS beatmaps_set_idx ON beatmaps (beatmapset_id);
`

const vectorSchema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS difficulty_vectors (
	hash      TEXT PRIMARY KEY REFERENCES beatmaps (hash) ON DELETE CASCADE,
	embedding vector(8) NOT NULL
);
`
