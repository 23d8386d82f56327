// Package repository contains the SQL for the deck and match tables.
package repository

import "github.com/jmoiron/sqlx"

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository can
// run either directly against the pool or inside a transaction.
type Querier interface {
	sqlx.ExtContext
}
