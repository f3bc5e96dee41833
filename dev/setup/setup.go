package setup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	matchdb "outreach-backend/services/matchstore/db"
)

const devConfig = `{
	port: 8220,
	cache_dir: "dev/.state/contact-cache",
	teams_file: "dev/.state/teams.json5",
	libsql: {
		file: "dev/.state/outreach.db",
	},
}
`

const devTeams = `[
	// {school, sport, gender?} one entry per team to contact
	{school: "Merrimack", sport: "Baseball"},
	{school: "Bowdoin", sport: "Ice Hockey", gender: "Women"},
]
`

func isWorkspaceRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil
}

func EnsureWorkspaceRoot() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	if !isWorkspaceRoot(dir) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}
	return nil
}

func writeIfMissing(path, content string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// CreateOutreachdState lays out everything outreachd needs to start
// locally: a config, a sample team list, an empty cache directory and
// a run-history database with the schema applied.
func CreateOutreachdState() error {
	err := os.MkdirAll("dev/.state/contact-cache", 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	err = writeIfMissing("config.json5", devConfig)
	if err != nil {
		return err
	}
	err = writeIfMissing("dev/.state/teams.json5", devTeams)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", "dev/.state/outreach.db")
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(matchdb.Schema)
	if err != nil {
		return err
	}
	return nil
}

func PrintConfigLocations() {
	fmt.Println("config: config.json5")
	fmt.Println("teams: dev/.state/teams.json5")
	fmt.Println("cache: dev/.state/contact-cache/")
	fmt.Println("database: dev/.state/outreach.db")
}
