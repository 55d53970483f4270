// Command history prints the stored compositions of a mixer database.
// It opens Badger read-only so it can run next to a live mixer.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"pop-lab/repositories"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	user := flag.String("user", "", "Only show this user (every user when empty)")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	if err := inspect(os.Stdout, db, *user); err != nil {
		log.Fatal(err)
	}
}

func inspect(w io.Writer, db *badger.DB, user string) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"User", "Time", "ID", "Syrups", "Soda", "Add-ins"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	prefix := []byte("mix:")
	if user != "" {
		prefix = []byte("mix:" + user + ":")
	}
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				composition, err := repositories.DecodeComposition(v)
				if err != nil {
					fmt.Fprintf(w, "Error decoding key %s: %v\n", key, err)
					return nil
				}
				// mix:{user}:{timestamp}:{uuid}
				owner := strings.SplitN(key, ":", 3)[1]
				displayID := composition.ID.String()[:8]
				table.Append([]string{
					owner,
					composition.CreatedAt.Format("2006-01-02 15:04:05"),
					displayID,
					strings.Join(composition.Syrups, " + "),
					strings.Join(composition.Soda, ""),
					strings.Join(composition.AddIns, ", "),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}
