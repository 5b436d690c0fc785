package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one row of the key/value table.
type Entry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "kv_entries" }

// SQL stores entries in a single table through gorm.
type SQL struct {
	db *gorm.DB
}

// OpenSQL opens a sqlite3 or mysql database and migrates the table.
func OpenSQL(driver, dsn string) (*SQL, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite3", "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dialector = mysql.Open(dsn + sep + "charset=utf8mb4&parseTime=True&loc=Local")
	default:
		return nil, fmt.Errorf("%w: driver %q", ErrUnsupported, driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	s := NewSQL(db)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSQL wraps an open gorm handle. Call Migrate if the table may not exist.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Migrate() error {
	if err := s.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("migrate kv_entries: %w", err)
	}
	return nil
}

// byKey matches one row. A struct condition would drop an empty key and
// match every row.
func byKey(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "key"}, Value: key}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where(byKey(key)).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	e := Entry{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(byKey(key)).Delete(&Entry{}).Error
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
