package store

// Bootstrap DDL, applied on startup. Participant lists and score matrices
// live in JSONB: laps rows are ragged and the team lists are queried with
// jsonb existence operators.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id     UUID PRIMARY KEY,
	subject     TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL DEFAULT '',
	player_id   UUID,
	is_admin    BOOLEAN NOT NULL DEFAULT FALSE,
	is_premium  BOOLEAN NOT NULL DEFAULT FALSE,
	create_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	update_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS players (
	player_id      UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	initial        TEXT NOT NULL DEFAULT '',
	avatar         TEXT NOT NULL DEFAULT '',
	user_id        UUID,
	linked_user_id UUID,
	group_id       UUID,
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	create_time    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS players_user_id_idx ON players (user_id);
CREATE INDEX IF NOT EXISTS players_linked_user_id_idx ON players (linked_user_id);

CREATE TABLE IF NOT EXISTS groups (
	group_id    UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	user_id     UUID NOT NULL,
	create_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS groups_user_id_idx ON groups (user_id);

CREATE TABLE IF NOT EXISTS play_sessions (
	session_id     UUID PRIMARY KEY,
	game_id        TEXT NOT NULL,
	players        JSONB NOT NULL DEFAULT '[]',
	red_team       JSONB NOT NULL DEFAULT '[]',
	blue_team      JSONB NOT NULL DEFAULT '[]',
	laps           JSONB NOT NULL DEFAULT '[]',
	special_points JSONB,
	group_id       UUID,
	user_id        UUID NOT NULL,
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	create_time    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS play_sessions_user_id_idx ON play_sessions (user_id);
CREATE INDEX IF NOT EXISTS play_sessions_group_id_idx ON play_sessions (group_id);
CREATE INDEX IF NOT EXISTS play_sessions_players_idx ON play_sessions USING GIN (players);
CREATE INDEX IF NOT EXISTS play_sessions_red_team_idx ON play_sessions USING GIN (red_team);
CREATE INDEX IF NOT EXISTS play_sessions_blue_team_idx ON play_sessions USING GIN (blue_team);
`
