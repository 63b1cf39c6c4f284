package news

import (
	"sort"
	"time"

	"crypto-news-feed/internal/domain/entity"
)

// AllSources selects every source in Dashboard.
const AllSources = "All"

// UnknownSource labels records whose source could not be determined.
const UnknownSource = "Unknown"

// publishedLayouts are the date formats found in RSS pubDate fields.
var publishedLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// Listing is a slice of the snapshot as returned by the list endpoints.
type Listing struct {
	Items           []entity.NewsRecord
	LastUpdate      *time.Time
	RefreshInterval time.Duration
}

// Count returns the number of items in the listing.
func (l Listing) Count() int { return len(l.Items) }

// Updated reports whether the underlying snapshot was ever refreshed.
func (l Listing) Updated() bool { return l.LastUpdate != nil }

// Status summarizes the snapshot for the status endpoint.
type Status struct {
	LastUpdate      *time.Time
	TotalCount      int
	RefreshInterval time.Duration
}

// SourceCount is the number of records from one source.
type SourceCount struct {
	Source string
	Count  int
}

// DashboardView is everything the dashboard page renders.
// Statistics cover the whole snapshot; Items honours the source filter.
type DashboardView struct {
	Items           []entity.NewsRecord
	Selected        string
	Sources         []string
	Total           int
	SourceTotal     int
	BySource        []SourceCount
	ByHour          [24]int
	LatestPublished *time.Time
	LastUpdate      *time.Time
}

// Reader runs the read-only use cases against a Store.
type Reader struct {
	store          *Store
	dashboardLimit int
}

// NewReader creates a Reader. dashboardLimit caps the dashboard list; 0 shows everything.
func NewReader(store *Store, dashboardLimit int) *Reader {
	if dashboardLimit < 0 {
		dashboardLimit = 0
	}
	return &Reader{store: store, dashboardLimit: dashboardLimit}
}

// ListAll returns every record in the current snapshot.
func (r *Reader) ListAll() Listing {
	snap := r.store.Load()
	return Listing{
		Items:           snap.Items,
		LastUpdate:      snap.LastUpdate,
		RefreshInterval: snap.RefreshInterval,
	}
}

// Latest returns the first n records, clamped to the snapshot size.
func (r *Reader) Latest(n int) Listing {
	snap := r.store.Load()
	return Listing{
		Items:           snap.Latest(n),
		LastUpdate:      snap.LastUpdate,
		RefreshInterval: snap.RefreshInterval,
	}
}

// Status returns the snapshot summary.
func (r *Reader) Status() Status {
	snap := r.store.Load()
	return Status{
		LastUpdate:      snap.LastUpdate,
		TotalCount:      snap.Count(),
		RefreshInterval: snap.RefreshInterval,
	}
}

// Dashboard builds the dashboard view. source filters the list; "" and
// AllSources disable the filter.
func (r *Reader) Dashboard(source string) DashboardView {
	snap := r.store.Load()
	if source == "" {
		source = AllSources
	}

	view := DashboardView{
		Selected:   source,
		Total:      snap.Count(),
		LastUpdate: snap.LastUpdate,
		Items:      []entity.NewsRecord{},
	}

	counts := make(map[string]int)
	for _, item := range snap.Items {
		label := sourceLabel(item)
		counts[label]++

		if source == AllSources || source == label {
			view.Items = append(view.Items, item)
		}

		published, ok := ParsePublished(item.PublishedDate)
		if !ok && snap.LastUpdate != nil {
			published, ok = snap.LastUpdate.UTC(), true
		}
		if !ok {
			continue
		}
		view.ByHour[published.Hour()]++
		if view.LatestPublished == nil || published.After(*view.LatestPublished) {
			p := published
			view.LatestPublished = &p
		}
	}

	if r.dashboardLimit > 0 && len(view.Items) > r.dashboardLimit {
		view.Items = view.Items[:r.dashboardLimit]
	}

	view.SourceTotal = len(counts)
	view.Sources = make([]string, 0, len(counts))
	view.BySource = make([]SourceCount, 0, len(counts))
	for name, n := range counts {
		view.Sources = append(view.Sources, name)
		view.BySource = append(view.BySource, SourceCount{Source: name, Count: n})
	}
	sort.Strings(view.Sources)
	sort.Slice(view.BySource, func(i, j int) bool {
		if view.BySource[i].Count != view.BySource[j].Count {
			return view.BySource[i].Count > view.BySource[j].Count
		}
		return view.BySource[i].Source < view.BySource[j].Source
	})

	return view
}

// ParsePublished parses an RSS publication date and returns it in UTC.
func ParsePublished(raw string) (time.Time, bool) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func sourceLabel(item entity.NewsRecord) string {
	if item.Source == "" {
		return UnknownSource
	}
	return item.Source
}
