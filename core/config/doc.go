// Package config loads catalog-manager settings.
//
// Values come from a .env file (if present) and the environment, read through
// Viper. Every key has a default declared in a `default` struct tag. Nested
// keys map to upper-case variables joined by underscores:
//
//	STORE_BACKEND=sql
//	DATABASE_DRIVER=mysql
//	CATALOG_CASCADE_DELETE=false
//	CONSOLE_LOCALE=ru
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Store.Backend)
package config
