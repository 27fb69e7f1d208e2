package internal

import "time"

const (
	FeedFetchConcurrency = 50
	OgFetchConcurrency   = 20

	FeedFetchTimeout = 30 * time.Second
	OgFetchTimeout   = 10 * time.Second

	// AggregateWindow is the trailing span within which entries are kept.
	AggregateWindow = 8 * 24 * time.Hour

	MaxDescriptionLength = 200
	MaxContentLength     = 500

	HatenaBatchSize = 50

	BlogSummaryItems = 10
)
