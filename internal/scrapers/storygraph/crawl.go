package storygraph

import (
	"context"
	"fmt"
)

const DefaultMaxPages = 1000

type CrawlOptions struct {
	// MaxPages is the last page index the crawl may visit, 0 disables the
	// bound.
	MaxPages int
}

// Crawl fetches pages 1, 2, 3, ... in sequence until a page extracts to no
// records, that page is discarded. Records keep page order, then the order
// extract returned them in. Any fetch or extract error aborts the crawl.
func Crawl[T any](
	ctx context.Context,
	fetchPage func(ctx context.Context, page int) ([]byte, error),
	extract func(content []byte) ([]T, error),
	opts CrawlOptions,
) ([]T, error) {
	if opts.MaxPages < 0 {
		return nil, fmt.Errorf("crawl: max pages must not be negative, got %d", opts.MaxPages)
	}

	out := []T{}
	for page := 1; ; page++ {
		if opts.MaxPages > 0 && page > opts.MaxPages {
			return nil, &ParsingError{Details: fmt.Sprintf(
				"pagination did not reach an empty page within %d pages",
				opts.MaxPages,
			)}
		}

		content, err := fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		records, err := extract(content)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", page, err)
		}
		if len(records) == 0 {
			return out, nil
		}
		out = append(out, records...)
	}
}
