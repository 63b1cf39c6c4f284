package fetch

import (
	"testing"

	"crypto-news-feed/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		item RawItem
		want entity.NewsRecord
	}{
		{
			name: "summary with trailing outlet",
			item: RawItem{
				Title:       "Bitcoin rallies",
				Description: `Some summary <a href="http://x">link</a> — Outlet Name`,
				PubDate:     "Mon, 01 Jan 2024 10:00:00 GMT",
			},
			want: entity.NewsRecord{
				Title:         "Bitcoin rallies",
				Link:          "http://x",
				PublishedDate: "Mon, 01 Jan 2024 10:00:00 GMT",
				Summary:       "Some summary link — Outlet Name",
				Source:        "— Outlet Name",
			},
		},
		{
			name: "aggregator layout",
			item: RawItem{
				Title:       "ETH upgrade ships",
				Description: `<a href="https://news.example.com/a/1" target="_blank">ETH upgrade ships</a>  <font color="#6f6f6f">CoinDesk</font>`,
				PubDate:     "Tue, 02 Jan 2024 08:30:00 GMT",
			},
			want: entity.NewsRecord{
				Title:         "ETH upgrade ships",
				Link:          "https://news.example.com/a/1",
				PublishedDate: "Tue, 02 Jan 2024 08:30:00 GMT",
				Summary:       "ETH upgrade ships CoinDesk",
				Source:        "CoinDesk",
			},
		},
		{
			name: "no anchor",
			item: RawItem{Title: "Plain", Description: "<p>Just   text</p>\n<p>here</p>"},
			want: entity.NewsRecord{Title: "Plain", Summary: "Just text here"},
		},
		{
			name: "all fields missing",
			item: RawItem{},
			want: entity.NewsRecord{},
		},
		{
			name: "first of several links, source after last",
			item: RawItem{
				Description: `<a href="https://one">One</a> and <a href="https://two">Two</a> The Block`,
			},
			want: entity.NewsRecord{
				Link:    "https://one",
				Summary: "One and Two The Block",
				Source:  "The Block",
			},
		},
		{
			name: "anchor without href",
			item: RawItem{Description: `<a name="top">Top</a> Decrypt`},
			want: entity.NewsRecord{Summary: "Top Decrypt", Source: "Decrypt"},
		},
		{
			name: "nothing after last anchor",
			item: RawItem{Description: `<a href="https://x">Only link</a>`},
			want: entity.NewsRecord{Link: "https://x", Summary: "Only link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.item)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	item := RawItem{
		Title:       "Same",
		Description: `Text <a href="http://x">a</a> Outlet`,
		PubDate:     "Wed, 03 Jan 2024 00:00:00 GMT",
	}

	assert.Equal(t, Normalize(item), Normalize(item))
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	items := []RawItem{{Title: "first"}, {Title: "second"}, {Title: "third"}}

	got := NormalizeAll(items)

	assert.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestNormalizeAll_Empty(t *testing.T) {
	got := NormalizeAll(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain", want: "plain"},
		{in: "<b>bold</b> and <i>italic</i>", want: "bold and italic"},
		{in: "  lots \t of\n\nspace  ", want: "lots of space"},
		{in: "a<br/>b", want: "ab"},
		{in: "<<b>>x", want: ">x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHTML(tt.in))
		})
	}
}
