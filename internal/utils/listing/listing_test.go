package listing

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name    string
	Status  string
	Amount  float64
	Created time.Time
}

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

var rows = []row{
	{Name: "banana", Status: "active", Amount: 3, Created: base.Add(2 * time.Hour)},
	{Name: "Apple", Status: "inactive", Amount: 1, Created: base.Add(3 * time.Hour)},
	{Name: "cherry", Status: "active", Amount: 2, Created: base.Add(1 * time.Hour)},
}

var spec = Spec[row]{
	Search:  func(r row) []string { return []string{r.Name, r.Status} },
	Filters: map[string]func(row) string{"status": func(r row) string { return r.Status }},
	Strings: map[string]func(row) string{"name": func(r row) string { return r.Name }},
	Times:   map[string]func(row) time.Time{"created_at": func(r row) time.Time { return r.Created }},
	Numbers: map[string]func(row) float64{"amount": func(r row) float64 { return r.Amount }},
}

func names(rs []row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestToggle(t *testing.T) {
	s := SortState{}.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Order: OrderAsc}, s)

	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Order: OrderDesc}, s)

	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Order: OrderAsc}, s)

	assert.Equal(t, SortState{Key: "amount", Order: OrderAsc}, s.Toggle("amount"))
}

func TestSortCaseInsensitiveAndReversible(t *testing.T) {
	state := SortState{}.Toggle("name")
	asc := Apply(rows, spec, Query{Sort: state}).Data
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(asc))

	state = state.Toggle("name")
	desc := Apply(rows, spec, Query{Sort: state}).Data
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, names(desc))

	state = state.Toggle("name")
	again := Apply(rows, spec, Query{Sort: state}).Data
	assert.Equal(t, names(asc), names(again))
}

func TestSortByTimeAndNumber(t *testing.T) {
	byTime := Apply(rows, spec, Query{Sort: SortState{Key: "created_at", Order: OrderAsc}}).Data
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, names(byTime))

	byAmount := Apply(rows, spec, Query{Sort: SortState{Key: "amount", Order: OrderDesc}}).Data
	assert.Equal(t, []string{"banana", "cherry", "Apple"}, names(byAmount))
}

func TestUnknownSortKeepsOrder(t *testing.T) {
	got := Apply(rows, spec, Query{Sort: SortState{Key: "nope", Order: OrderAsc}}).Data
	assert.Equal(t, names(rows), names(got))
}

func TestSearchIsIdempotent(t *testing.T) {
	once := Search(rows, spec.Search, "AN")
	twice := Search(once, spec.Search, "AN")

	assert.Equal(t, []string{"banana"}, names(once))
	assert.Equal(t, once, twice)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	before := names(rows)
	_ = Apply(rows, spec, Query{Sort: SortState{Key: "name", Order: OrderDesc}})
	assert.Equal(t, before, names(rows))
}

func TestFilterAndCounts(t *testing.T) {
	res := Apply(rows, spec, Query{Filters: map[string]string{"status": "Active", "unknown": "x"}})

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 3, res.Total)
	assert.ElementsMatch(t, []string{"banana", "cherry"}, names(res.Data))
}

func TestParseQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(ParseQuery(c))
	})

	cases := []struct {
		url  string
		want Query
	}{
		{
			url:  "/?q=%20shop%20&status=active&sort=name",
			want: Query{Search: "shop", Filters: map[string]string{"status": "active"}, Sort: SortState{Key: "name", Order: OrderAsc}},
		},
		{
			url:  "/?sort=created_at&order=DESC&role=staff",
			want: Query{Filters: map[string]string{"role": "staff"}, Sort: SortState{Key: "created_at", Order: OrderDesc}},
		},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)

		var got Query
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, tc.want, got)
	}
}
