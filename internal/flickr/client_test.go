package flickr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogrid/internal/config"
	"photogrid/internal/domain"
)

const searchBody = `{"photos":{"page":1,"pages":10,"perpage":2,"total":"20","photo":[
{"id":"1","owner":"o","secret":"s1","server":"100","farm":1,"title":"Cat One"},
{"id":"2","owner":"o","secret":"s2","server":"200","farm":2,"title":"Broken"}]},"stat":"ok"}`

type fakeTransport struct {
	mu         sync.Mutex
	searchBody string
	jpegData   []byte
	requests   []string
}

func (t *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req.URL.String())
	t.mu.Unlock()

	switch {
	case req.URL.Host == "api.test":
		return &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(t.searchBody)),
		}, nil
	case strings.HasSuffix(req.URL.Host, ".staticflickr.com"):
		if strings.HasPrefix(req.URL.Path, "/200/") {
			return &http.Response{
				StatusCode: 404,
				Body:       io.NopCloser(strings.NewReader("not found")),
			}, nil
		}
		return &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": []string{"image/jpeg"}},
			Body:       io.NopCloser(bytes.NewReader(t.jpegData)),
		}, nil
	default:
		return nil, fmt.Errorf("unexpected host: %s", req.URL.Host)
	}
}

func (t *fakeTransport) count(substr string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, r := range t.requests {
		if strings.Contains(r, substr) {
			n++
		}
	}
	return n
}

func makeTestJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func testSettings() config.FlickrSettings {
	s := config.DefaultConfig().Flickr
	s.APIKey = "key"
	s.Endpoint = "https://api.test/services/rest/"
	s.Workers = 2
	return s
}

func newTestClient(t *testing.T, rt http.RoundTripper, settings config.FlickrSettings) *Client {
	t.Helper()
	c, err := NewClient(settings, &http.Client{Transport: rt})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestPhotoURL(t *testing.T) {
	p := &domain.Photo{ID: "42", Farm: 5, Server: "1234", Secret: "abc"}
	assert.Equal(t, "https://farm5.staticflickr.com/1234/42_abc_m.jpg", PhotoURL(p, "m"))
	assert.Equal(t, "https://farm5.staticflickr.com/1234/42_abc_b.jpg", PhotoURL(p, "b"))
}

func TestImageBaseURLOverride(t *testing.T) {
	settings := testSettings()
	settings.ImageBaseURL = "http://images.test/"
	c := newTestClient(t, &fakeTransport{}, settings)

	p := &domain.Photo{ID: "42", Farm: 5, Server: "1234", Secret: "abc"}
	assert.Equal(t, "http://images.test/1234/42_abc_b.jpg", c.LargeURL(p))
}

func TestSearchDownloadsThumbnails(t *testing.T) {
	rt := &fakeTransport{searchBody: searchBody, jpegData: makeTestJPEG(t)}
	c := newTestClient(t, rt, testSettings())

	group, err := c.Search(context.Background(), "cats")
	require.NoError(t, err)
	assert.Equal(t, "cats", group.SearchTerm)
	require.Len(t, group.Photos, 2)

	first := group.Photos[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Cat One", first.Title)
	assert.Equal(t, 1, first.Farm)
	require.NotNil(t, first.Thumbnail)
	assert.Equal(t, 8, first.Thumbnail.Bounds().Dx())

	// 404 leaves the thumbnail empty without failing the search
	assert.Nil(t, group.Photos[1].Thumbnail)

	search := rt.requests[0]
	assert.Contains(t, search, "method=flickr.photos.search")
	assert.Contains(t, search, "nojsoncallback=1")
	assert.Contains(t, search, "format=json")
	assert.Contains(t, search, "per_page=20")
	assert.Contains(t, search, "text=cats")
}

func TestSearchMissingAPIKey(t *testing.T) {
	settings := testSettings()
	settings.APIKey = ""
	c := newTestClient(t, &fakeTransport{}, settings)

	_, err := c.Search(context.Background(), "cats")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSearchAPIFailure(t *testing.T) {
	rt := &fakeTransport{searchBody: `{"stat":"fail","code":100,"message":"Invalid API Key (Key has invalid format)"}`}
	c := newTestClient(t, rt, testSettings())

	_, err := c.Search(context.Background(), "cats")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 100, apiErr.Code)
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestSearchBadJSON(t *testing.T) {
	c := newTestClient(t, &fakeTransport{searchBody: "not-json"}, testSettings())

	_, err := c.Search(context.Background(), "cats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode search response")
}

type statusTransport struct{ code int }

func (t statusTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: t.code, Body: io.NopCloser(strings.NewReader("oops"))}, nil
}

func TestSearchHTTPStatus(t *testing.T) {
	c := newTestClient(t, statusTransport{code: 500}, testSettings())

	_, err := c.Search(context.Background(), "cats")
	assert.ErrorIs(t, err, ErrHTTPStatus)
}

func TestLoadLargeImageUsesCache(t *testing.T) {
	rt := &fakeTransport{jpegData: makeTestJPEG(t)}
	c := newTestClient(t, rt, testSettings())
	photo := &domain.Photo{ID: "1", Farm: 1, Server: "100", Secret: "s1"}

	img, err := c.LoadLargeImage(context.Background(), photo)
	require.NoError(t, err)
	require.NotNil(t, img)

	again, err := c.LoadLargeImage(context.Background(), photo)
	require.NoError(t, err)
	assert.Same(t, img, again)
	assert.Equal(t, 1, rt.count("_b.jpg"))
}

func TestLoadLargeImageLeavesPhotoUntouched(t *testing.T) {
	rt := &fakeTransport{jpegData: makeTestJPEG(t)}
	c := newTestClient(t, rt, testSettings())
	carried := image.NewRGBA(image.Rect(0, 0, 1, 1))
	photo := &domain.Photo{ID: "1", Farm: 1, Server: "100", Secret: "s1", LargeImage: carried}

	img, err := c.LoadLargeImage(context.Background(), photo)
	require.NoError(t, err)
	assert.NotSame(t, carried, img)
	assert.Same(t, carried, photo.LargeImage)
	assert.Equal(t, 1, rt.count("_b.jpg"))
}

func TestLoadLargeImageFailure(t *testing.T) {
	c := newTestClient(t, &fakeTransport{}, testSettings())
	photo := &domain.Photo{ID: "2", Farm: 2, Server: "200", Secret: "s2"}

	_, err := c.LoadLargeImage(context.Background(), photo)
	assert.ErrorIs(t, err, ErrHTTPStatus)
}
