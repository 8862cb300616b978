package main

import (
	"log"

	"github.com/voidshard/platen/pkg/database"
)

const (
	docMigrate = `Apply database schema migrations & exit`
)

type optsMigrate struct {
	optsGeneral
	optsDatabase
}

func (c *optsMigrate) Execute(args []string) error {
	// migrations are applied on connect
	db, err := database.New(&database.Options{URL: c.DatabaseURL})
	if err != nil {
		return err
	}
	log.Println("[Migrate] database is up to date")
	return db.Close()
}
