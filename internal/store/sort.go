package store

import (
	"sort"

	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortRecords orders records ascending by the given field using a
// case-insensitive, accent-aware collation, so "Água" sorts next to "agenda".
func sortRecords(recs []Record, field string) {
	if field == "" {
		return
	}
	c := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(recs, func(i, j int) bool {
		return c.CompareString(cast.ToString(recs[i][field]), cast.ToString(recs[j][field])) < 0
	})
}

func limitRecords(recs []Record, limit int) []Record {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
