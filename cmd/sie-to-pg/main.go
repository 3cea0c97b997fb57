// Command sie-to-pg loads a parsed SIE export into Postgres for ad hoc
// querying: one row per account, verification, transaction and balance
// entry.
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"

	"bokslut.dev/sie"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	number TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	sru TEXT NOT NULL DEFAULT '',
	balance NUMERIC NOT NULL,
	period_activity NUMERIC NOT NULL
);
CREATE TABLE IF NOT EXISTS verifications (
	id SERIAL PRIMARY KEY,
	series TEXT NOT NULL,
	number TEXT NOT NULL,
	date TEXT NOT NULL,
	text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
	id SERIAL PRIMARY KEY,
	verification_id INTEGER NOT NULL REFERENCES verifications (id),
	account TEXT NOT NULL,
	account_name TEXT NOT NULL,
	amount NUMERIC NOT NULL,
	date TEXT NOT NULL,
	text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS balance_entries (
	kind TEXT NOT NULL,
	year TEXT NOT NULL,
	account TEXT NOT NULL,
	amount NUMERIC NOT NULL,
	PRIMARY KEY (kind, year, account)
);
`

func main() {
	dsn := flag.String("dsn", "postgres://localhost/sie?sslmode=disable", "Postgres DSN")
	flag.Parse()

	ledger, err := sie.Parse(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatal(err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatal(err)
	}
	if err := load(tx, ledger); err != nil {
		tx.Rollback()
		log.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		log.Fatal(err)
	}
}

func load(tx *sql.Tx, ledger *sie.Ledger) error {
	for _, acc := range ledger.Accounts {
		_, err := tx.Exec(`INSERT INTO accounts (number, name, type, sru, balance, period_activity)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (number) DO UPDATE SET name = $2, type = $3, sru = $4, balance = $5, period_activity = $6`,
			acc.Number, acc.Name, string(acc.Type), acc.SRU, acc.Balance.String(), acc.PeriodActivity.String())
		if err != nil {
			return err
		}
	}

	for _, ver := range ledger.Verifications {
		var verID int
		err := tx.QueryRow(`INSERT INTO verifications (series, number, date, text)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			ver.Series, ver.Number, ver.Date, ver.Text).Scan(&verID)
		if err != nil {
			return err
		}
		for _, t := range ver.Transactions {
			_, err := tx.Exec(`INSERT INTO transactions (verification_id, account, account_name, amount, date, text)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				verID, t.Account, t.AccountName, t.Amount.String(), t.Date, t.Text)
			if err != nil {
				return err
			}
		}
	}

	kinds := map[string]sie.BalanceMap{
		"opening": ledger.OpeningBalances,
		"closing": ledger.ClosingBalances,
		"result":  ledger.Results,
	}
	for kind, m := range kinds {
		for year, entries := range m {
			for _, e := range entries {
				_, err := tx.Exec(`INSERT INTO balance_entries (kind, year, account, amount)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (kind, year, account) DO UPDATE SET amount = $4`,
					kind, year, e.Account, e.Amount.String())
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
