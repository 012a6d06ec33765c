package commands

import (
	"fmt"
	"storygraph-backend/internal/scrapers/storygraph"
	"storygraph-backend/lib/serviceutil"
	"storygraph-backend/lib/textutil"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for books.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		best, _ := cmd.Flags().GetBool("best")
		asTable, _ := cmd.Flags().GetBool("table")

		if !best && !asTable {
			fmt.Println(e.api.Search(cmd.Context(), args[0]))
			return
		}

		results, err := e.scraper.Search(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to search", err)
		}
		if best {
			titles := make([]string, len(results))
			for i, r := range results {
				titles[i] = r.Title
			}
			idx, similarity := textutil.MostSimilar(args[0], titles)
			if idx < 0 {
				serviceutil.Fatal("failed to search", fmt.Errorf("no results for %q", args[0]))
			}
			results = results[idx : idx+1]
			if !asTable {
				fmt.Println(storygraph.Envelope(func() (storygraph.SearchResult, error) {
					return results[0], nil
				}))
				return
			}
			fmt.Printf("best match (similarity %.2f)\n", similarity)
		}
		renderSearchResults(results)
	},
}

var userIdCmd = &cobra.Command{
	Use:   "user-id [username]",
	Short: "Print the internal id of a user, defaults to the configured user.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		fmt.Println(e.api.UserID(cmd.Context(), e.username(args)))
	},
}

var listNames = map[string]storygraph.UserList{
	"currently-reading": storygraph.LIST_CURRENTLY_READING,
	"to-read":           storygraph.LIST_TO_READ,
	"read":              storygraph.LIST_READ,
}

var listCmd = &cobra.Command{
	Use:       "list <currently-reading|to-read|read> [username]",
	Short:     "Print every book on one of a user's shelves.",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"currently-reading", "to-read", "read"},
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		asTable, _ := cmd.Flags().GetBool("table")

		list, ok := listNames[args[0]]
		if !ok {
			serviceutil.Fatal("unknown list", fmt.Errorf("%q is not one of currently-reading, to-read or read", args[0]))
		}
		username := e.username(args[1:])

		if !asTable {
			switch list {
			case storygraph.LIST_CURRENTLY_READING:
				fmt.Println(e.api.CurrentlyReading(cmd.Context(), username))
			case storygraph.LIST_TO_READ:
				fmt.Println(e.api.ToRead(cmd.Context(), username))
			case storygraph.LIST_READ:
				fmt.Println(e.api.BooksRead(cmd.Context(), username))
			}
			return
		}

		books, err := e.scraper.List(cmd.Context(), list, username)
		if err != nil {
			serviceutil.Fatal("failed to list books", err)
		}
		renderListedBooks(books)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print every journal entry of the logged in user.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		asTable, _ := cmd.Flags().GetBool("table")
		if !asTable {
			fmt.Println(e.api.AllJournalEntries(cmd.Context()))
			return
		}

		entries, err := e.scraper.History(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch journal", err)
		}
		renderEntries(entries)
	},
}

func init() {
	searchCmd.Flags().Bool("best", false, "Only print the result whose title is closest to the query.")
	searchCmd.Flags().Bool("table", false, "Render the results as a table.")
	listCmd.Flags().Bool("table", false, "Render the books as a table.")
	historyCmd.Flags().Bool("table", false, "Render the entries as a table.")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(userIdCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}
