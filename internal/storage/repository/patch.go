package repository

import (
	"fmt"
	"strings"
)

// buildUpdate собирает UPDATE из списка колонок частичного обновления.
// Колонки добавляются вызывающим только для явно присутствующих полей
// патча: отсутствующее поле не попадает в SET и остаётся нетронутым.
// Первичный ключ и chat_id сюда не попадают никогда.
func buildUpdate(table string, cols []string, args []any, idCol string, id any, returning string) (string, []any) {
	var sets []string
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(sets, ", "), idCol, len(args),
	)
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args
}
