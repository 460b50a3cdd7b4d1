package sqlstore

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/models"
)

var schema = map[string][]string{
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title VARCHAR(255) NOT NULL,
			author_id INTEGER NOT NULL REFERENCES authors(id),
			description TEXT,
			genre_id INTEGER NOT NULL REFERENCES genres(id)
		)`,
	},
	"mysql": {
		"CREATE TABLE IF NOT EXISTS `authors` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`name` VARCHAR(255) NOT NULL, " +
			"INDEX `idx_authors_name` (`name`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `genres` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`name` VARCHAR(255) NOT NULL, " +
			"INDEX `idx_genres_name` (`name`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `books` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`title` VARCHAR(255) NOT NULL, " +
			"`author_id` INT NOT NULL, " +
			"`description` TEXT, " +
			"`genre_id` INT NOT NULL, " +
			"FOREIGN KEY (`author_id`) REFERENCES `authors` (`id`), " +
			"FOREIGN KEY (`genre_id`) REFERENCES `genres` (`id`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
}

// Bootstrap creates the catalog tables when they do not exist yet.
func (s *Store) Bootstrap(ctx context.Context) error {
	stmts, ok := schema[s.dialect]
	if !ok {
		return models.NewStoreError("bootstrap", fmt.Errorf("unsupported dialect %q", s.dialect))
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return models.NewStoreError("bootstrap", err)
		}
	}
	return nil
}
