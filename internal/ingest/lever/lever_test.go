package lever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobintel-engine/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingsJSON = `[
  {
    "id": "abc-123",
    "text": " Data Scientist ",
    "hostedUrl": "https://jobs.lever.co/acme/abc-123",
    "createdAt": 1755590400000,
    "description": "Python and SQL.",
    "categories": {
      "location": " New York, NY ",
      "team": "Data",
      "commitment": "Full-time"
    }
  },
  {"id": "", "text": "Ghost entry without an id"}
]`

func TestFetchMapsPostings(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(postingsJSON))
	}))
	defer srv.Close()

	c := New([]config.Company{{Slug: "acme", Name: "Acme"}}, 2, 5*time.Second, nil)
	c.baseURL = srv.URL

	res, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mode=json", gotQuery)
	assert.Equal(t, "lever", res.Source)
	require.Len(t, res.Postings, 1, "entries without an id are skipped")

	p := res.Postings[0]
	assert.Equal(t, "lever", p.Source)
	assert.Equal(t, "abc-123", p.SourceJobID)
	assert.Equal(t, "Data Scientist", p.Title)
	assert.Equal(t, "New York, NY", p.LocationRaw)
	assert.Equal(t, "Data", p.Department)
	assert.Equal(t, "Full-time", p.EmploymentType)
	assert.Equal(t, "https://jobs.lever.co/acme/abc-123", p.JobURL)
	require.NotNil(t, p.DatePosted)
	assert.Equal(t, time.UnixMilli(1755590400000).UTC(), *p.DatePosted)
}
