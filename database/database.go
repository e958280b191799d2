package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

// List of SQL drivers for when I want to import more: https://zchee.github.io/golang-wiki/SQLDrivers/

var (
	drivers = map[string]string{"Firebird SQL": "firebirdsql", "MariaDB": "mysql", "MySQL": "mysql",
		"Oracle": "oracle", "Postgres": "postgres", "SQLite": "sqlite"}
)

func GetdB(driver, host, port, db, user, password string) (*sql.DB, error) {

	driverName, ok := drivers[driver]
	if !ok {
		return nil, errors.New("no driver called '" + driver + "'. " + GetDriverOptions())
	}

	connectionString := fmt.Sprintf("host=%v port=%v dbname=%v user=%v password=%v sslmode=disable",
		host, port, db, user, password)

	sqlObj, connectionError := sql.Open(driverName, connectionString)
	if connectionError != nil {
		return nil, connectionError
	}

	err := sqlObj.Ping()

	if err != nil {
		return nil, err
	}

	return sqlObj, nil
}

func GetDriverOptions() string {
	result := "The following SQL drivers are available: "
	for k, v := range GetSortedDrivers() {
		if k > 0 {
			result = result + ", "
		}
		result = result + v
	}
	return result
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

// RunQuery runs a row-returning statement and hands everything back as
// strings: the scripting language is dynamically typed and whatever it
// wants to make of the values it can make of their string forms.
func RunQuery(db *sql.DB, query string, args ...any) ([][]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := [][]string{}
	for rows.Next() {
		raw := make([]sql.RawBytes, len(columns))
		pointers := make([]any, len(columns))
		for k := range raw {
			pointers[k] = &raw[k]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make([]string, len(columns))
		for k, cell := range raw {
			row[k] = string(cell)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func RunExec(db *sql.DB, query string, args ...any) (int64, error) {
	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func AddUser(db *sql.DB, username, password string) error {

	query :=
		`CREATE TABLE IF NOT EXISTS _Users (
    username varchar(32),
    password varchar(60),
PRIMARY KEY (username));`
	_, err := db.Exec(query)
	if err != nil {
		return err
	}

	encryptedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	query =
		`INSERT INTO _Users(username, password)
	VALUES ($1, $2)`
	_, err = db.Exec(query, username, string(encryptedPassword))
	return err
}

func ValidateUser(db *sql.DB, username, password string) (bool, error) {
	query :=
		`SELECT password FROM _Users
WHERE username = $1`
	rows, err := db.Query(query, username)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return false, errors.New("no user called '" + username + "'")
	}
	var stored string
	if err := rows.Scan(&stored); err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	return err == nil, nil
}
