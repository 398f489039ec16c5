// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL 驱动

	"github.com/wfunc/whist/models"
)

const queryTimeout = 5 * time.Second

// PostgreSQL 基于 database/sql 的实现
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{`
        CREATE TABLE IF NOT EXISTS round_records (
            id SERIAL PRIMARY KEY,
            table_id VARCHAR(64) NOT NULL,
            game_id VARCHAR(64) NOT NULL,
            round_number INT NOT NULL,
            hand_size INT NOT NULL,
            trump VARCHAR(32) NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`, `
        CREATE TABLE IF NOT EXISTS round_results (
            id SERIAL PRIMARY KEY,
            round_record_id INT NOT NULL REFERENCES round_records(id),
            game_id VARCHAR(64) NOT NULL,
            player_id VARCHAR(64) NOT NULL,
            bid INT,
            tricks INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`, `
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            table_id VARCHAR(64) NOT NULL,
            game_id VARCHAR(64) UNIQUE NOT NULL,
            players JSONB NOT NULL,
            rounds INT NOT NULL,
            total_tricks JSONB NOT NULL,
            started_at TIMESTAMP,
            finished_at TIMESTAMP,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`, `
        CREATE INDEX IF NOT EXISTS idx_round_results_player_id ON round_results(player_id);
        CREATE INDEX IF NOT EXISTS idx_round_records_game_id ON round_records(game_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRoundRecord 在事务中保存回合及玩家结果
func (p *PostgreSQL) SaveRoundRecord(record *models.RoundRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
        INSERT INTO round_records (table_id, game_id, round_number, hand_size, trump)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		record.TableID, record.GameID, record.RoundNumber, record.HandSize, record.Trump,
	).Scan(&id)
	if err != nil {
		return err
	}

	for _, res := range record.Results {
		var bid sql.NullInt64
		if res.Bid != nil {
			bid = sql.NullInt64{Int64: int64(*res.Bid), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO round_results (round_record_id, game_id, player_id, bid, tricks)
            VALUES ($1, $2, $3, $4, $5)`,
			id, record.GameID, res.PlayerID, bid, res.Tricks)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveGameRecord 保存游戏记录 (UPSERT)
func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(record.TotalTricks)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err = p.db.ExecContext(ctx, `
        INSERT INTO game_records (table_id, game_id, players, rounds, total_tricks, started_at, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (game_id)
        DO UPDATE SET rounds = $4, total_tricks = $5, finished_at = $7`,
		record.TableID, record.GameID, players, record.Rounds, totals, record.StartedAt, record.FinishedAt)
	return err
}

// GetPlayerStats 汇总玩家的回合结果
func (p *PostgreSQL) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	stats := &models.PlayerStats{PlayerID: playerID}
	err := p.db.QueryRowContext(ctx, `
        SELECT
            COUNT(DISTINCT game_id),
            COUNT(*),
            COALESCE(SUM(tricks), 0),
            COALESCE(SUM(CASE WHEN bid = tricks THEN 1 ELSE 0 END), 0)
        FROM round_results
        WHERE player_id = $1`,
		playerID,
	).Scan(&stats.Games, &stats.Rounds, &stats.TricksWon, &stats.ExactBids)
	if err != nil {
		return nil, err
	}
	if stats.Rounds == 0 {
		return nil, ErrRecordNotFound
	}
	return stats, nil
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
