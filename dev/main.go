package main

import (
	"flag"
	"log/slog"
	"os"

	"outreach-backend/dev/setup"

	_ "modernc.org/sqlite"
)

func create(recreate bool) error {
	err := setup.EnsureWorkspaceRoot()
	if err != nil {
		return err
	}

	if recreate {
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	err = setup.CreateOutreachdState()
	if err != nil {
		return err
	}
	setup.PrintConfigLocations()

	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created successfully!")
}
