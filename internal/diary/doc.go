// Package diary holds the per-day food log and its derived view.
//
// # Overview
//
// The store keeps the server-shaped day map (date → entries, body weight,
// target calories) plus a cache of which contiguous date spans have been
// fetched. Rendering never reads the raw state: Format joins it against
// the catalogue into a fresh FormattedDay graph on every call.
//
// # Range cache and prefetch
//
//	SelectDate(day)
//	      │
//	      ▼
//	ShouldLoadMore?  ──no──▶ done
//	      │ yes
//	      ▼
//	debounce window ──▶ re-check ──▶ loadAnchor ──▶ FetchDiaryWindow
//	                                                       │
//	                              loaded = MergeRanges ◀───┘
//
// ShouldLoadMore is a proximity trigger: it fires for dates near the edge
// of loaded data even when the date itself is already loaded, so the next
// window arrives before the user scrolls off the end. The loaded set is
// re-merged after every fetch and stays pairwise non-overlapping and
// non-adjacent.
//
// # Mutations
//
// Create, update, delete and body-weight operations are round trips: the
// UI disables the form, the server's accepted result is echoed into local
// state, and failures leave the previous state intact. There are no
// optimistic updates, so there is nothing to roll back. Every accepted
// weight change reports its calorie delta to the statistics aggregator.
package diary
