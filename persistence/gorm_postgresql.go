// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/whist/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.GormRoundRecord{},
		&models.GormRoundResult{},
		&models.GormGameRecord{},
	); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveRoundRecord 保存回合记录及玩家结果
func (p *GormPostgreSQL) SaveRoundRecord(record *models.RoundRecord) error {
	rec := models.NewGormRoundRecord(record)
	return p.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
}

// SaveGameRecord 保存或更新游戏记录
func (p *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	rec := models.NewGormGameRecord(record)

	var existing models.GormGameRecord
	err := p.db.Where("game_id = ?", record.GameID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p.db.Create(rec).Error
	} else if err != nil {
		return err
	}

	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	return p.db.Save(rec).Error
}

// GetPlayerStats 汇总玩家的回合结果
func (p *GormPostgreSQL) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	var row struct {
		Games     int
		Rounds    int
		TricksWon int
		ExactBids int
	}
	err := p.db.Raw(`
        SELECT
            COUNT(DISTINCT game_id) AS games,
            COUNT(*) AS rounds,
            COALESCE(SUM(tricks), 0) AS tricks_won,
            COALESCE(SUM(CASE WHEN bid = tricks THEN 1 ELSE 0 END), 0) AS exact_bids
        FROM round_results
        WHERE player_id = ? AND deleted_at IS NULL`,
		playerID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.Rounds == 0 {
		return nil, ErrRecordNotFound
	}
	return &models.PlayerStats{
		PlayerID:  playerID,
		Games:     row.Games,
		Rounds:    row.Rounds,
		TricksWon: row.TricksWon,
		ExactBids: row.ExactBids,
	}, nil
}

// Close 关闭数据库连接
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
