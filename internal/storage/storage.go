package storage

import (
	"reflect"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type storageImpl struct {
	db          *sqlx.DB
	placeholder sq.PlaceholderFormat
	now         func() time.Time
}

// New creates the storage. placeholder must match the driver db was opened with
// (sq.Question for sqlite3, sq.Dollar for pgx).
func New(db *sqlx.DB, placeholder sq.PlaceholderFormat) *storageImpl {
	return &storageImpl{
		db:          db,
		placeholder: placeholder,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *storageImpl) stmpBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(s.placeholder)
}

// Fields возвращает список всех полей структуры, которые есть в БД.
func fields(data any) string {
	var s string
	r := reflect.TypeOf(data)
	for i := 0; i < r.NumField(); i++ {
		tag := r.Field(i).Tag.Get("db")
		if tag != "" {
			s += tag + ","
		}
	}
	return s[:len(s)-1]
}
