// Database stuff.
package storage

import (
	"database/sql"
	"errors"
	"os"

	log "github.com/golang/glog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bobonovski/goalign/table"
)

const create = (`
    pragma journal_mode = off;
    pragma synchronous = off;

    drop table if exists parameters;
    drop table if exists translation;

    create table parameters (
        key   text primary key not NULL,
        value text default NULL
    );

    create table translation (
        iteration integer not NULL,
        target    text not NULL,
        source    text not NULL,
        prob      real not NULL
    );

    create index translation_iteration on translation(iteration);
`)

var ErrNoSnapshot = errors.New("storage: no table stored for iteration")

func MakeDB(path string, overwrite bool) (db *sql.DB, err error) {
	if overwrite {
		if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
			return
		}
	}
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return
	}
	if err = db.Ping(); err != nil {
		return
	}

	_, err = db.Exec(create)
	return
}

// SetParameter records a run setting such as the model name
func SetParameter(db *sql.DB, key, value string) error {
	_, err := db.Exec(`insert or replace into parameters values (?, ?)`, key, value)
	return err
}

func Parameter(db *sql.DB, key string) (value string, err error) {
	err = db.QueryRow(`select value from parameters where key = ?`, key).Scan(&value)
	return
}

// SaveTable stores the nonzero cells of t as the snapshot of iteration
// iter, replacing an earlier snapshot of the same iteration. Tokens without
// a nonzero cell are stored with probability 0.
func SaveTable(db *sql.DB, iter int, t *table.TranslationTable) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`delete from translation where iteration = ?`, iter); err != nil {
		return
	}
	ins, err := tx.Prepare(`insert into translation values (?, ?, ?, ?)`)
	if err != nil {
		return
	}
	defer ins.Close()

	triples := t.Export()
	for _, tr := range triples {
		if _, err = ins.Exec(iter, tr.Target, tr.Source, tr.Prob); err != nil {
			return
		}
	}
	if err = tx.Commit(); err != nil {
		return
	}
	log.V(1).Infof("stored %d cells for iteration %d", len(triples), iter)
	return
}

// Iterations lists the stored snapshot iterations in ascending order
func Iterations(db *sql.DB) ([]int, error) {
	rows, err := db.Query(`select distinct iteration from translation order by iteration`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var iters []int
	for rows.Next() {
		var iter int
		if err := rows.Scan(&iter); err != nil {
			return nil, err
		}
		iters = append(iters, iter)
	}
	return iters, rows.Err()
}

// LoadTable rebuilds the snapshot of iteration iter
func LoadTable(db *sql.DB, iter int) (*table.TranslationTable, error) {
	rows, err := db.Query(`select target, source, prob from translation
        where iteration = ?`, iter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts []table.Triple
	for rows.Next() {
		var tr table.Triple
		if err := rows.Scan(&tr.Target, &tr.Source, &tr.Prob); err != nil {
			return nil, err
		}
		ts = append(ts, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, ErrNoSnapshot
	}
	return table.FromTriples(ts), nil
}
