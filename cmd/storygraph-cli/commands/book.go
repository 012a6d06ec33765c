package commands

import (
	"fmt"
	"storygraph-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book <book_id>",
	Short: "Print a book's details, community reviews and content warnings.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		fmt.Println(e.api.BookInfo(cmd.Context(), args[0]))
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <book_id>",
	Short: "Print your reading progress for a book.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		fmt.Println(e.api.ReadingProgress(cmd.Context(), args[0]))
	},
}

var readDatesCmd = &cobra.Command{
	Use:   "read-dates <book_id>",
	Short: "Print the start and finish dates of your most recent read of a book.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		fmt.Println(e.api.ReadDates(cmd.Context(), args[0]))
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <book_id> [user_id]",
	Short: "Print the AI generated summary of a book, user_id defaults to the configured user's.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		var userId string
		if len(args) > 1 {
			userId = args[1]
		} else {
			id, err := e.scraper.UserId(cmd.Context(), e.username(nil))
			if err != nil {
				serviceutil.Fatal("failed to look up user id", err)
			}
			userId = id.UserId
		}
		fmt.Println(e.api.AISummary(cmd.Context(), args[0], userId))
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal <book_id>",
	Short: "Print your journal entries for a book.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		fmt.Println(e.api.JournalEntries(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(readDatesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(journalCmd)
}
