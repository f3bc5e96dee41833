package main

import (
	configlibsql "outreach-backend/lib/configutil/libsql"
)

type OutreachConfig struct {
	// http port the trigger api listens on
	Port int `json:"port"`
	// directory holding per-team staff json files
	CacheDir string `json:"cache_dir"`
	// json5 file listing {school, sport, gender} requests to process
	// on each trigger
	TeamsFile string `json:"teams_file"`
	// run history database
	Libsql configlibsql.Struct `json:"libsql"`
}
