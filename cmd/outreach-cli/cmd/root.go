package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"outreach-backend/lib/scrapers/athletics"
	"outreach-backend/services/contactcache"
	"outreach-backend/services/contacts"
	"outreach-backend/services/directory"
)

var cacheDir string
var dbPath string

var rootCmd = &cobra.Command{
	Use:   "outreach-cli",
	Short: "outreach-cli finds and inspects athletics coaching staff contacts.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "contact-cache", "directory holding cached staff json files")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "outreach.db", "sqlite file recording pipeline runs")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func newPipeline() *contacts.Service {
	dir, err := directory.NewService()
	if err != nil {
		fatal(err)
	}
	cache, err := contactcache.NewService(cacheDir)
	if err != nil {
		fatal(err)
	}
	fetcher := athletics.NewClient(athletics.ClientOptions{
		MinDelay: time.Second * 2,
		Jitter:   time.Second,
	})
	return contacts.NewService(dir, cache, fetcher)
}

func parseGender(raw string) (athletics.Gender, error) {
	switch raw {
	case "", "unknown":
		return athletics.GenderUnknown, nil
	case "men", "m":
		return athletics.GenderMen, nil
	case "women", "w":
		return athletics.GenderWomen, nil
	}
	return athletics.GenderUnknown, fmt.Errorf("unknown gender %q, expected men, women or unknown", raw)
}
