package flickr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/webp"

	"photogrid/internal/config"
	"photogrid/internal/domain"
)

var (
	// ErrMissingAPIKey is returned when no Flickr API key is configured
	ErrMissingAPIKey = errors.New("missing Flickr API key")
	// ErrHTTPStatus wraps non-2xx responses
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// APIError is a failure reported by the Flickr API itself
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flickr error %d: %s", e.Code, e.Message)
}

type searchResponse struct {
	Photos struct {
		Page    int           `json:"page"`
		Pages   int           `json:"pages"`
		PerPage int           `json:"perpage"`
		Total   flexibleInt   `json:"total"`
		Photo   []photoRecord `json:"photo"`
	} `json:"photos"`
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type photoRecord struct {
	ID     string `json:"id"`
	Owner  string `json:"owner"`
	Secret string `json:"secret"`
	Server string `json:"server"`
	Farm   int    `json:"farm"`
	Title  string `json:"title"`
}

// flexibleInt accepts both 123 and "123"; Flickr has sent total either way
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexibleInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexibleInt(n)
	return nil
}

// Client searches Flickr and downloads photo images
type Client struct {
	http     *http.Client
	settings config.FlickrSettings
	cache    *lru.Cache[string, image.Image]
	pool     pond.ResultPool[image.Image]
}

// NewClient creates a client. httpClient may be nil to use a client with the
// configured timeout.
func NewClient(settings config.FlickrSettings, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		timeout := time.Duration(settings.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	cacheSize := settings.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}

	workers := settings.Workers
	if workers <= 0 {
		workers = 8
	}

	return &Client{
		http:     httpClient,
		settings: settings,
		cache:    cache,
		pool:     pond.NewResultPool[image.Image](workers),
	}, nil
}

// Close stops the download pool after queued downloads finish
func (c *Client) Close() {
	c.pool.StopAndWait()
}

// PhotoURL builds the static image URL of photo for a Flickr size suffix
func PhotoURL(photo *domain.Photo, size string) string {
	return fmt.Sprintf("https://farm%d.staticflickr.com/%s/%s_%s_%s.jpg",
		photo.Farm, photo.Server, photo.ID, photo.Secret, size)
}

// imageURL honours an image host override from the settings
func (c *Client) imageURL(photo *domain.Photo, size string) string {
	if base := strings.TrimRight(c.settings.ImageBaseURL, "/"); base != "" {
		return fmt.Sprintf("%s/%s/%s_%s_%s.jpg", base, photo.Server, photo.ID, photo.Secret, size)
	}
	return PhotoURL(photo, size)
}

// LargeURL returns the URL of the large size of photo
func (c *Client) LargeURL(photo *domain.Photo) string {
	return c.imageURL(photo, c.settings.LargeSize)
}

// Search runs a Flickr text search and downloads the thumbnails of every hit.
// Thumbnails that fail to download are left nil.
func (c *Client) Search(ctx context.Context, term string) (*domain.SearchResultGroup, error) {
	if c.settings.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	records, err := c.searchPhotos(ctx, term)
	if err != nil {
		return nil, err
	}

	photos := make([]*domain.Photo, 0, len(records))
	for _, r := range records {
		photos = append(photos, &domain.Photo{
			ID:     r.ID,
			Farm:   r.Farm,
			Server: r.Server,
			Secret: r.Secret,
			Title:  r.Title,
		})
	}

	c.loadThumbnails(ctx, photos)

	return &domain.SearchResultGroup{SearchTerm: term, Photos: photos}, nil
}

func (c *Client) searchPhotos(ctx context.Context, term string) ([]photoRecord, error) {
	perPage := c.settings.PerPage
	if perPage <= 0 {
		perPage = 20
	}

	params := url.Values{}
	params.Set("method", "flickr.photos.search")
	params.Set("api_key", c.settings.APIKey)
	params.Set("text", term)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("format", "json")
	params.Set("nojsoncallback", "1")

	reqURL := c.settings.Endpoint + "?" + params.Encode()
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	defer func() { _ = body.Close() }()

	var parsed searchResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if parsed.Stat != "ok" {
		return nil, &APIError{Code: parsed.Code, Message: parsed.Message}
	}

	log.Printf("Flickr search %q: page %d/%d, %d total", term, parsed.Photos.Page, parsed.Photos.Pages, parsed.Photos.Total)
	return parsed.Photos.Photo, nil
}

func (c *Client) loadThumbnails(ctx context.Context, photos []*domain.Photo) {
	group := c.pool.NewGroup()
	for _, photo := range photos {
		group.Submit(func() image.Image {
			img, err := c.fetchImage(ctx, c.imageURL(photo, c.settings.ThumbnailSize))
			if err != nil {
				log.Printf("Error loading thumbnail for %s: %v", photo.ID, err)
				return nil
			}
			return img
		})
	}

	// Results come back in submission order
	thumbs, err := group.Wait()
	if err != nil {
		log.Printf("Thumbnail downloads interrupted: %v", err)
		return
	}
	for i, img := range thumbs {
		photos[i].Thumbnail = img
	}
}

// LoadLargeImage downloads the large image of photo through the image cache.
// It runs off the UI goroutine, so it only reads the photo's immutable
// identity fields and never its cached images.
func (c *Client) LoadLargeImage(ctx context.Context, photo *domain.Photo) (image.Image, error) {
	img, err := c.fetchImage(ctx, c.imageURL(photo, c.settings.LargeSize))
	if err != nil {
		return nil, fmt.Errorf("large image for %s: %w", photo.ID, err)
	}
	return img, nil
}

func (c *Client) fetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	if img, ok := c.cache.Get(imageURL); ok {
		return img, nil
	}

	body, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	img, _, err := image.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", imageURL, err)
	}

	c.cache.Add(imageURL, img)
	return img, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "photogrid")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}
	return resp.Body, nil
}
