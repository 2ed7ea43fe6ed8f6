// persistence/gorm_postgresql.go
package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tabuparty/gameserver/models"
)

// GormPostgreSQL is the GORM word bank backend.
type GormPostgreSQL struct {
	db *gorm.DB
}

// WordModel is the words table row.
type WordModel struct {
	ID        int            `gorm:"primaryKey"`
	Word      string         `gorm:"uniqueIndex;not null"`
	Taboos    pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WordModel) TableName() string {
	return "words"
}

// NewGormPostgreSQL opens a GORM connection and migrates the words table.
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

	if err := db.AutoMigrate(&WordModel{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) Create(word string, taboos []string) (models.Word, error) {
	var created WordModel

	err := g.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&WordModel{}).Where("word = ?", word).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateWord
		}

		var maxID int
		if err := tx.Model(&WordModel{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}

		created = WordModel{
			ID:     maxID + 1,
			Word:   word,
			Taboos: pq.StringArray(taboos),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return models.Word{}, err
	}
	return toWord(created), nil
}

func (g *GormPostgreSQL) List() ([]models.Word, error) {
	var rows []WordModel
	if err := g.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	words := make([]models.Word, 0, len(rows))
	for _, row := range rows {
		words = append(words, toWord(row))
	}
	return words, nil
}

func (g *GormPostgreSQL) Delete(id int) error {
	result := g.db.Delete(&WordModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWordNotFound
	}
	return nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toWord(row WordModel) models.Word {
	return models.Word{ID: row.ID, Word: row.Word, Taboos: []string(row.Taboos)}
}
