package countries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
	{"name":{"common":"Zimbabwe"},"idd":{"root":"+2","suffixes":["63"]},"flags":{"png":"https://flagcdn.com/w320/zw.png"},"cca2":"ZW"},
	{"name":{"common":"Antarctica"},"idd":{"root":"","suffixes":[]},"flags":{"png":"https://flagcdn.com/w320/aq.png"},"cca2":"AQ"},
	{"name":{"common":"Canada"},"idd":{"root":"+1","suffixes":[""]},"flags":{"png":"https://flagcdn.com/w320/ca.png"},"cca2":"CA"}
]`

func TestListFiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2, "entries without dial data are dropped")
	assert.Equal(t, "Canada", list[0].Name.Common)
	assert.Equal(t, "Zimbabwe", list[1].Name.Common)
	assert.Equal(t, "+1", list[0].IDD.Root)
}

func TestListCachesResult(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.List(context.Background())
	require.NoError(t, err)
	_, err = client.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestListFallsBackWhenUpstreamFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "United States", list[0].Name.Common)
}

func TestListFallsBackOnUnreachableHost(t *testing.T) {
	list, err := NewClient("http://127.0.0.1:1").List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
