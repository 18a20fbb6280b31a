package scoring

import "strings"

// StyleBucket is a named keyword set used to pick a letter style.
type StyleBucket struct {
	ID       string
	Keywords []string
}

// KeywordHits counts how many distinct keywords occur in text, case-insensitively.
func KeywordHits(text string, keywords []string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

// ClassifyStyle returns the id of the bucket with the most keyword hits. Ties
// go to the bucket declared first; with no hits at all the first bucket wins.
// An empty bucket list yields "".
func ClassifyStyle(text string, buckets []StyleBucket) string {
	best, bestHits := "", -1
	for _, b := range buckets {
		if hits := KeywordHits(text, b.Keywords); hits > bestHits {
			best, bestHits = b.ID, hits
		}
	}
	return best
}
