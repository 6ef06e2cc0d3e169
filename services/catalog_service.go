package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/data_access"
	"github.com/emanuelrivas243/streamia-server/logger"
	"github.com/emanuelrivas243/streamia-server/models"
)

// Catalog result sources.
const (
	SourceStore    = "store"
	SourceExternal = "external"
)

const (
	maxListSize      = 100
	providerPageSize = 50
)

// MovieStore is the catalog store as the resolver sees it. Reachable is
// checked once per request; its answer decides the data source.
type MovieStore interface {
	Reachable(ctx context.Context) bool
	Count(ctx context.Context) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.Movie, error)
	FindFiltered(ctx context.Context, category, search string, limit int) ([]models.Movie, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateMovieRequest) (*models.Movie, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// VideoProvider is the external stock-video service.
type VideoProvider interface {
	Popular(ctx context.Context, perPage int) ([]models.StockVideo, error)
	Search(ctx context.Context, query string, perPage int) ([]models.StockVideo, error)
}

// CatalogResult is the resolver's answer: the movies plus which source was
// authoritative for this request.
type CatalogResult struct {
	Movies  []models.Movie
	Source  string
	Message string
}

// CatalogService decides whether the catalog store or the external provider
// answers a read, normalizes external items into the local shape, and
// opportunistically backfills the store.
type CatalogService struct {
	store    MovieStore
	provider VideoProvider
	cache    *MovieCache
}

func NewCatalogService(store MovieStore, provider VideoProvider, cache *MovieCache) *CatalogService {
	return &CatalogService{
		store:    store,
		provider: provider,
		cache:    cache,
	}
}

// ListMovies returns up to the 100 most recently created movies. A reachable
// store is authoritative; an empty one is backfilled from the provider
// first. An unreachable store falls back to the provider without persisting.
func (s *CatalogService) ListMovies(ctx context.Context) (*CatalogResult, error) {
	if !s.store.Reachable(ctx) {
		movies, err := s.fetchPopular(ctx)
		if err != nil {
			return nil, err
		}
		return &CatalogResult{Movies: movies, Source: SourceExternal}, nil
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.backfill(ctx); err != nil {
			return nil, err
		}
	}

	movies, err := s.store.FindRecent(ctx, maxListSize)
	if err != nil {
		return nil, err
	}
	return &CatalogResult{Movies: movies, Source: SourceStore}, nil
}

// ExploreMovies applies case-insensitive substring filters on title (search)
// and category, with the same source selection as ListMovies. Zero matches
// is a success, not an error.
func (s *CatalogService) ExploreMovies(ctx context.Context, category, search string) (*CatalogResult, error) {
	result := &CatalogResult{}

	if s.store.Reachable(ctx) {
		count, err := s.store.Count(ctx)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			if err := s.backfill(ctx); err != nil {
				return nil, err
			}
		}

		movies, err := s.store.FindFiltered(ctx, category, search, maxListSize)
		if err != nil {
			return nil, err
		}
		result.Movies = movies
		result.Source = SourceStore
	} else {
		movies, err := s.fetchPopular(ctx)
		if err != nil {
			return nil, err
		}
		result.Movies = filterMovies(movies, category, search)
		result.Source = SourceExternal
	}

	if len(result.Movies) == 0 {
		result.Message = "no movies matched the given filters"
	}
	return result, nil
}

// GetMovieByID looks a movie up by internal id or by external id. With the
// store down, the provider's popular batch is scanned by external id; a
// provider failure there is "service unavailable", never "not found".
func (s *CatalogService) GetMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	if s.store.Reachable(ctx) {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			movie, err := s.store.FindByID(ctx, oid)
			if err != nil {
				return nil, err
			}
			if movie != nil {
				return movie, nil
			}
		}

		movie, err := s.store.FindByExternalID(ctx, id)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, ErrNotFound
		}
		return movie, nil
	}

	movies, err := s.fetchPopular(ctx)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ExternalID == id {
			return &movies[i], nil
		}
	}
	return nil, ErrNotFound
}

// PopularFromProvider always answers from the external provider, bypassing
// the store. With a query it uses the provider's search endpoint. Both
// shapes go through the cache.
func (s *CatalogService) PopularFromProvider(ctx context.Context, query string) ([]models.Movie, error) {
	if query == "" {
		return s.fetchPopular(ctx)
	}

	key := fmt.Sprintf("search:%s:%d", strings.ToLower(query), providerPageSize)
	if movies, ok := s.cache.Get(key); ok {
		return movies, nil
	}

	videos, err := s.provider.Search(ctx, query, providerPageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	movies := normalizeStockVideos(videos)
	s.cache.Set(key, movies)
	return movies, nil
}

// UpdateMovie edits a local catalog record. Mutations never reach the
// external provider.
func (s *CatalogService) UpdateMovie(ctx context.Context, id string, req *models.UpdateMovieRequest) (*models.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.store.Reachable(ctx) {
		return nil, ErrStoreUnavailable
	}

	movie, err := s.store.Update(ctx, oid, req)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	return movie, nil
}

func (s *CatalogService) DeleteMovie(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if !s.store.Reachable(ctx) {
		return ErrStoreUnavailable
	}

	deleted, err := s.store.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// fetchPopular returns the normalized popular batch, serving from the cache
// when the previous fetch with the same request shape is still fresh.
func (s *CatalogService) fetchPopular(ctx context.Context) ([]models.Movie, error) {
	key := fmt.Sprintf("popular:%d", providerPageSize)
	if movies, ok := s.cache.Get(key); ok {
		return movies, nil
	}

	videos, err := s.provider.Popular(ctx, providerPageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	movies := normalizeStockVideos(videos)
	s.cache.Set(key, movies)
	return movies, nil
}

// backfill persists the provider's popular batch into the store, skipping
// items already present by external id. Persistence is best-effort: a failed
// insert is logged and the remaining items are still attempted.
func (s *CatalogService) backfill(ctx context.Context) error {
	movies, err := s.fetchPopular(ctx)
	if err != nil {
		return err
	}

	for i := range movies {
		movie := movies[i]

		existing, err := s.store.FindByExternalID(ctx, movie.ExternalID)
		if err != nil {
			logger.Warn("backfill lookup failed", "external_id", movie.ExternalID, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		movie.CreatedAt = now
		movie.UpdatedAt = now
		if err := s.store.Insert(ctx, &movie); err != nil {
			if err == data_access.ErrDuplicateKey {
				continue
			}
			logger.Warn("backfill insert failed", "external_id", movie.ExternalID, "error", err)
		}
	}
	return nil
}

func filterMovies(movies []models.Movie, category, search string) []models.Movie {
	category = strings.ToLower(category)
	search = strings.ToLower(search)

	filtered := []models.Movie{}
	for _, m := range movies {
		if category != "" && !strings.Contains(strings.ToLower(m.Category), category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// normalizeStockVideos maps provider items into the local movie shape,
// skipping malformed entries instead of propagating them.
func normalizeStockVideos(videos []models.StockVideo) []models.Movie {
	movies := []models.Movie{}
	for _, v := range videos {
		if movie, ok := normalizeStockVideo(v); ok {
			movies = append(movies, movie)
		}
	}
	return movies
}

func normalizeStockVideo(v models.StockVideo) (models.Movie, bool) {
	if v.ID == 0 {
		return models.Movie{}, false
	}

	title := strings.TrimSpace(v.Title)
	if title == "" {
		title = titleFromURL(v.URL)
	}
	if title == "" && v.User.Name != "" {
		title = v.User.Name + " video"
	}
	if title == "" {
		return models.Movie{}, false
	}

	movie := models.Movie{
		Title:       title,
		Description: v.Description,
		Category:    strings.Join(v.Tags, ", "),
		ExternalID:  strconv.FormatInt(v.ID, 10),
		Duration:    v.Duration,
		Provider:    models.ProviderExternal,
	}

	if len(v.Pictures) > 0 {
		movie.CoverImage = v.Pictures[0].Picture
	} else if v.Image != "" {
		movie.CoverImage = v.Image
	}

	for _, f := range v.VideoFiles {
		if f.Link != "" {
			movie.VideoURL = f.Link
			break
		}
	}

	return movie, true
}

// titleFromURL derives a display name from the provider's page URL slug,
// e.g. ".../video/ocean-waves-at-sunset-12345/" becomes
// "ocean waves at sunset".
func titleFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	slug := trimmed[idx+1:]

	// Drop the trailing numeric id segment if present.
	if dash := strings.LastIndex(slug, "-"); dash > 0 {
		if _, err := strconv.Atoi(slug[dash+1:]); err == nil {
			slug = slug[:dash]
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
}
