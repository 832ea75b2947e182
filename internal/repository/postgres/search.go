package postgres

import "fmt"

// searchCondition возвращает SQL-условие фильтра поиска: пустой параметр
// пропускает все строки, иначе - подстрока без учета регистра.
// strpos вместо ILIKE, чтобы % и _ в запросе не работали как шаблоны.
func searchCondition(column string, param int) string {
	return fmt.Sprintf("($%[2]d::text = '' OR strpos(lower(%[1]s), lower($%[2]d::text)) > 0)", column, param)
}

// limitArg - LIMIT NULL в PostgreSQL означает "без ограничения"
func limitArg(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}
