package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNoUnicodeCaseFolding - lower() в базе не переводит не-ASCII буквы в нижний регистр.
// Так бывает при LC_CTYPE=C/POSIX или кодировке SQL_ASCII; поиск по кириллице
// тогда становится чувствительным к регистру.
var ErrNoUnicodeCaseFolding = errors.New("database lower() does not fold non-ASCII letters")

// caseFoldProbe проверяет на латинице с диакритикой и кириллице
const caseFoldProbe = `SELECT lower('ÄЖ') = 'äж'`

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// CheckCaseFolding проверяет, что регистронезависимый поиск работает для Unicode.
// Требуется база с UTF8 и локалью LC_CTYPE, отличной от C/POSIX.
func CheckCaseFolding(ctx context.Context, db rowQuerier) error {
	var folds bool
	if err := db.QueryRow(ctx, caseFoldProbe).Scan(&folds); err != nil {
		return fmt.Errorf("check case folding: %w", err)
	}
	if !folds {
		return ErrNoUnicodeCaseFolding
	}
	return nil
}
