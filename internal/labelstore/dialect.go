package labelstore

import (
	"fmt"
	"strconv"

	"nolabels/internal/config"
)

type dialect struct {
	driver     string
	sqlDriver  string
	positional bool
}

var (
	sqliteDialect   = dialect{driver: config.DriverSQLite, sqlDriver: "sqlite"}
	postgresDialect = dialect{driver: config.DriverPostgres, sqlDriver: "pgx", positional: true}
)

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverSQLite, "sqlite3", "":
		return sqliteDialect, nil
	case config.DriverPostgres, "pgx":
		return postgresDialect, nil
	default:
		return dialect{}, fmt.Errorf("labelstore: unsupported driver %q", driver)
	}
}

func (d dialect) placeholder(position int) string {
	if d.positional {
		return "$" + strconv.Itoa(position)
	}
	return "?"
}

// labelQuery builds the batched lookup. The first bound value is the language,
// followed by n entity ids.
func (d dialect) labelQuery(withText bool, n int) string {
	columns := "term_entity_id"
	if withText {
		columns = "term_entity_id, term_text"
	}
	return "SELECT " + columns + " FROM wb_terms" +
		" WHERE term_type = 'label'" +
		" AND term_language = " + d.placeholder(1) +
		" AND term_entity_type = 'item'" +
		" AND term_entity_id IN (" + placeholders(d, 2, n) + ")"
}
