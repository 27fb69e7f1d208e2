package store

import (
	"github.com/univac-1/ai-info-rss-feed/internal"
)

// Store persists the rendered outputs. Writes happen only after the whole
// pipeline has succeeded; any write failure is fatal to the run.
type Store interface {
	WriteDistribution(set internal.DistributionSet) error
	WriteBlogFeeds(feeds []internal.Source, ogMap map[string]internal.OgObject, countMap map[string]int) error
}
