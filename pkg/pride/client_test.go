package pride

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adda-Baaj/pride-client/pkg/httpclient"
	"github.com/Adda-Baaj/pride-client/pkg/rest"
)

type getCall struct {
	path   string
	params rest.Params
}

// fakeGetter records calls and replies with a canned value.
type fakeGetter struct {
	res   any
	err   error
	calls []getCall
}

func (f *fakeGetter) GetJSON(_ context.Context, path string, params rest.Params) (any, error) {
	f.calls = append(f.calls, getCall{path: path, params: params})
	return f.res, f.err
}

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func TestProjectAccessionPath(t *testing.T) {
	g := &fakeGetter{res: map[string]any{"accession": "PRD000001"}}
	c := NewWithGetter(g)

	if _, err := c.ProjectAccession(context.Background(), "PRD000001"); err != nil {
		t.Fatalf("ProjectAccession: %v", err)
	}
	if len(g.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(g.calls))
	}
	if g.calls[0].path != "project/PRD000001" {
		t.Fatalf("path = %s", g.calls[0].path)
	}
	if g.calls[0].params != nil {
		t.Fatalf("project detail takes no params, got %v", g.calls[0].params)
	}
}

func TestProjectAccessionRejectsEmpty(t *testing.T) {
	g := &fakeGetter{}
	_, err := NewWithGetter(g).ProjectAccession(context.Background(), "  ")
	if !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}
	if len(g.calls) != 0 {
		t.Fatalf("no request expected")
	}
}

func TestProjectAccessionPropagatesTransportError(t *testing.T) {
	notFound := &rest.StatusError{Service: ServiceName, StatusCode: http.StatusNotFound}
	_, err := NewWithGetter(&fakeGetter{err: notFound}).ProjectAccession(context.Background(), "PRD999999")
	if !errors.Is(err, rest.ErrNotFound) {
		t.Fatalf("expected not-found to propagate, got %v", err)
	}
}

func TestProjectListUnwrapsList(t *testing.T) {
	g := &fakeGetter{res: decode(t, `{"list":[{"accession":"PXD000001"},{"accession":"PXD000002"}]}`)}
	res, err := NewWithGetter(g).ProjectList(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProjectList: %v", err)
	}
	list, ok := res.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected unwrapped list of 2, got %#v", res)
	}
	if g.calls[0].path != "project/list" {
		t.Fatalf("path = %s", g.calls[0].path)
	}
}

func TestProjectListFallsBackWithoutListKey(t *testing.T) {
	raw := decode(t, `{"projects":[1,2],"count":2}`)
	res, err := NewWithGetter(&fakeGetter{res: raw}).ProjectList(context.Background(), nil)
	if err != nil {
		t.Fatalf("missing list key must not fail: %v", err)
	}
	if !reflect.DeepEqual(res, raw) {
		t.Fatalf("expected raw response, got %#v", res)
	}
}

func TestProjectListFallsBackForNonObject(t *testing.T) {
	raw := decode(t, `[{"accession":"PXD000001"}]`)
	res, err := NewWithGetter(&fakeGetter{res: raw}).ProjectList(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProjectList: %v", err)
	}
	if !reflect.DeepEqual(res, raw) {
		t.Fatalf("expected raw array, got %#v", res)
	}
}

func TestProjectListPropagatesDecodeError(t *testing.T) {
	decodeErr := errors.Join(rest.ErrDecode, errors.New("bad json"))
	_, err := NewWithGetter(&fakeGetter{err: decodeErr}).ProjectList(context.Background(), nil)
	if !errors.Is(err, rest.ErrDecode) {
		t.Fatalf("malformed responses must still fail, got %v", err)
	}
}

func TestProjectCountNeverUnwraps(t *testing.T) {
	raw := decode(t, `{"list":[1,2,3],"count":5}`)
	res, err := NewWithGetter(&fakeGetter{res: raw}).ProjectCount(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProjectCount: %v", err)
	}
	if !reflect.DeepEqual(res, raw) {
		t.Fatalf("expected object as-is, got %#v", res)
	}
}

func TestListAndCountSendSameParams(t *testing.T) {
	q := NewProjectQuery()
	q.TissueFilter = String("liver")
	q.Page = Int(3)

	g := &fakeGetter{res: map[string]any{}}
	c := NewWithGetter(g)
	if _, err := c.ProjectList(context.Background(), q); err != nil {
		t.Fatalf("ProjectList: %v", err)
	}
	if _, err := c.ProjectCount(context.Background(), q); err != nil {
		t.Fatalf("ProjectCount: %v", err)
	}

	want := rest.Params{"show": "10", "page": "3", "order": "desc", "tissueFilter": "liver"}
	for i, call := range g.calls {
		if !reflect.DeepEqual(call.params, want) {
			t.Errorf("call %d params = %v want %v", i, call.params, want)
		}
	}
	if g.calls[1].path != "project/count" {
		t.Fatalf("path = %s", g.calls[1].path)
	}
}

func TestNilQueryUsesDefaults(t *testing.T) {
	g := &fakeGetter{res: json.Number("7")}
	if _, err := NewWithGetter(g).ProjectCount(context.Background(), nil); err != nil {
		t.Fatalf("ProjectCount: %v", err)
	}
	want := rest.Params{"show": "10", "page": "0", "order": "desc"}
	if !reflect.DeepEqual(g.calls[0].params, want) {
		t.Fatalf("params = %v want %v", g.calls[0].params, want)
	}
}

// archiveServer replays a small slice of the PRIDE archive API.
func archiveServer(t *testing.T, hits *atomic.Int32, queries chan<- string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pride/ws/archive/project/PRD000001", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accession":"PRD000001","title":"COFRADIC N-terminal proteome","numPeptides":6758,"numProteins":1008}`))
	})
	mux.HandleFunc("/pride/ws/archive/project/list", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if queries != nil {
			queries <- r.URL.RawQuery
		}
		_, _ = w.Write([]byte(`{"list":[{"accession":"PXD000001"}]}`))
	})
	mux.HandleFunc("/pride/ws/archive/project/count", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if queries != nil {
			queries <- r.URL.RawQuery
		}
		_, _ = w.Write([]byte(`42`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newHTTPClient(t *testing.T, baseURL string, cache rest.Cache) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL: baseURL + "/pride/ws/archive",
		Cache:   cache,
		HTTP:    httpclient.NewRestyClient(2 * time.Second),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestProjectAccessionFixture(t *testing.T) {
	var hits atomic.Int32
	srv := archiveServer(t, &hits, nil)
	c := newHTTPClient(t, srv.URL, nil)

	res, err := c.ProjectAccession(context.Background(), "PRD000001")
	if err != nil {
		t.Fatalf("ProjectAccession: %v", err)
	}
	obj, ok := res.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", res)
	}
	if obj["numPeptides"] != json.Number("6758") {
		t.Fatalf("numPeptides = %#v", obj["numPeptides"])
	}
}

func TestProjectAccessionNotFoundOverHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := archiveServer(t, &hits, nil)
	c := newHTTPClient(t, srv.URL, nil)

	_, err := c.ProjectAccession(context.Background(), "PRD999999")
	if !errors.Is(err, rest.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// memCache is a minimal rest.Cache.
type memCache map[string][]byte

func (m memCache) Get(k string) ([]byte, bool, error) {
	v, ok := m[k]
	return v, ok, nil
}

func (m memCache) Put(k string, v []byte) error {
	m[k] = v
	return nil
}

func TestCacheDoesNotChangeQueryConstruction(t *testing.T) {
	var hits atomic.Int32
	queries := make(chan string, 4)
	srv := archiveServer(t, &hits, queries)

	q := NewProjectQuery()
	q.Show = Int(100)
	q.InstrumentFilter = String("LTQ Orbitrap")

	uncached := newHTTPClient(t, srv.URL, nil)
	cached := newHTTPClient(t, srv.URL, memCache{})

	if _, err := uncached.ProjectList(context.Background(), q); err != nil {
		t.Fatalf("uncached ProjectList: %v", err)
	}
	if _, err := cached.ProjectList(context.Background(), q); err != nil {
		t.Fatalf("cached ProjectList: %v", err)
	}
	first, second := <-queries, <-queries
	if first != second {
		t.Fatalf("query differs with cache: %q vs %q", first, second)
	}

	// Second cached call is served locally.
	if _, err := cached.ProjectList(context.Background(), q); err != nil {
		t.Fatalf("cached ProjectList: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 server hits, got %d", got)
	}
}

func TestProjectCountOverHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := archiveServer(t, &hits, nil)
	c := newHTTPClient(t, srv.URL, nil)

	res, err := c.ProjectCount(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProjectCount: %v", err)
	}
	if res != json.Number("42") {
		t.Fatalf("count = %#v", res)
	}
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	svc, ok := c.svc.(*rest.Service)
	if !ok {
		t.Fatalf("expected *rest.Service transport, got %T", c.svc)
	}
	if svc.BaseURL() != BaseURL || svc.Name() != ServiceName {
		t.Fatalf("unexpected service %s %s", svc.Name(), svc.BaseURL())
	}
}

func TestProjectAccessionSendsIdentifierAsGiven(t *testing.T) {
	g := &fakeGetter{res: map[string]any{}}
	if _, err := NewWithGetter(g).ProjectAccession(context.Background(), " PRD000001"); err != nil {
		t.Fatalf("ProjectAccession: %v", err)
	}
	if g.calls[0].path != "project/%20PRD000001" {
		t.Fatalf("path = %s, identifier must not be trimmed", g.calls[0].path)
	}
}

func TestProjectListNullListUnwrapsToNil(t *testing.T) {
	res, err := NewWithGetter(&fakeGetter{res: decode(t, `{"list":null,"count":0}`)}).ProjectList(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProjectList: %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil from null list, got %#v", res)
	}
}

func TestTimeoutAppliesToDefaultTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`1`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.ProjectCount(context.Background(), nil); err == nil {
		t.Fatalf("expected timeout from default transport")
	}
}
