// Package searchindex queries the typo-tolerant search service that backs
// search-as-you-type suggestions.
//
// The service exposes one index per category (medications, food_items,
// complementary_medicines) and answers POST /indexes/{index}/search with a
// list of hits. Cached wraps any driven.CandidateIndex with a short-lived
// LRU so repeated keystrokes do not hit the network.
package searchindex
