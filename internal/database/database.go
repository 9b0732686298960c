package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createPlayerTable = `
CREATE TABLE IF NOT EXISTS player (
	player_id 		bigint 	GENERATED ALWAYS AS IDENTITY
							PRIMARY KEY,
	username 		text 	UNIQUE NOT NULL,
	password_hash 	bytea 	NOT NULL,
	created_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL,
	updated_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL
);`
	createGameSessionTable = `
CREATE TABLE IF NOT EXISTS game_session (
	game_session_id	bigint 	GENERATED ALWAYS AS IDENTITY
							PRIMARY KEY,
	player_id		bigint	REFERENCES player (player_id)
							NULL,
	rows			integer	NOT NULL,
	cols			integer	NOT NULL,
	mine_count		integer	NOT NULL,
	flag_count		integer	NOT NULL,
	status			smallint
							NOT NULL,
	started_at		timestamp with time zone
							DEFAULT now()
							NOT NULL,
	ended_at		timestamp with time zone
							NULL,
	state			bytea	NOT NULL,
	created_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL,
	updated_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL
);`
	createUpdateModifiedColumnFunction = `
CREATE OR REPLACE FUNCTION update_modified_column()
RETURNS TRIGGER AS $$
BEGIN
	NEW.updated_at = now();
	RETURN NEW;
END;
$$ LANGUAGE 'plpgsql';`
	createPlayerUpdateTrigger = `
CREATE OR REPLACE TRIGGER update_player_modtime
BEFORE UPDATE ON player
FOR EACH ROW EXECUTE FUNCTION update_modified_column();`
	createGameSessionUpdateTrigger = `
CREATE OR REPLACE TRIGGER update_game_session_modtime
BEFORE UPDATE ON game_session
FOR EACH ROW EXECUTE FUNCTION update_modified_column();`
	initSql = createPlayerTable +
		createGameSessionTable +
		createUpdateModifiedColumnFunction +
		createPlayerUpdateTrigger +
		createGameSessionUpdateTrigger
)

// Connect opens a pool and bootstraps the schema. The DDL is idempotent, so
// every process start runs it.
func Connect(ctx context.Context, dbUrl string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, err
	}
	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(ctx, initSql); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
