package storygraph

const notAvailable = "N/A"

const descriptionNotFound = "Description not found."

type Warnings struct {
	Graphic  []string `json:"graphic"`
	Moderate []string `json:"moderate"`
	Minor    []string `json:"minor"`
}

func emptyWarnings() Warnings {
	return Warnings{Graphic: []string{}, Moderate: []string{}, Minor: []string{}}
}

// Book is the metadata shown across a book's detail, community reviews and
// content warnings pages.
type Book struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Pages         string   `json:"pages"`
	FirstPub      string   `json:"first_pub"`
	Tags          []string `json:"tags"`
	AverageRating string   `json:"average_rating"`
	Description   string   `json:"description"`
	Warnings      Warnings `json:"warnings"`
	CoverUrl      *string  `json:"cover_url"`
}

type ReadDates struct {
	StartDate  *string `json:"start_date"`
	FinishDate *string `json:"finish_date"`
}

type Progress struct {
	Progress string `json:"progress"`
}

type SearchResult struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	BookId string `json:"book_id"`
}

// ListedBook is a book on one of a user's shelves.
type ListedBook struct {
	Title  string `json:"title"`
	BookId string `json:"book_id"`
}

type UserId struct {
	UserId string `json:"user_id"`
}

type Summary struct {
	Summary string `json:"summary"`
}

type EditKind int

const (
	EDIT_NONE EditKind = iota
	EDIT_READ_INSTANCE
	EDIT_JOURNAL_ENTRY
)

func (k EditKind) idPrefix() string {
	switch k {
	case EDIT_READ_INSTANCE:
		return "read_instance"
	case EDIT_JOURNAL_ENTRY:
		return "journal_entry"
	}
	return ""
}

// EditLink is the "edit" link on an authenticated book page, it points either
// at a read instance or at a journal entry.
type EditLink struct {
	Kind EditKind
	Id   string
}

// UserList is one of the paginated shelves on a user's profile.
type UserList string

const (
	LIST_CURRENTLY_READING UserList = "currently-reading"
	LIST_TO_READ           UserList = "to-read"
	LIST_READ              UserList = "books-read"
)
