package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// pageQuery builds the limit/offset query shared by the listing endpoints,
// clamping limit to the API's accepted range.
func pageQuery(limit, offset int) url.Values {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
}

func idsQuery(ids []string, max int) (url.Values, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no IDs provided")
	}
	if len(ids) > max {
		return nil, fmt.Errorf("maximum %d IDs allowed, got %d", max, len(ids))
	}
	return url.Values{"ids": {strings.Join(ids, ",")}}, nil
}

// Track retrieves a single track by ID.
func (c *Client) Track(ctx context.Context, trackID string) (*Track, error) {
	var track Track
	if err := c.get(ctx, "/tracks/"+trackID, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Tracks retrieves multiple tracks by their IDs (up to 50).
func (c *Client) Tracks(ctx context.Context, trackIDs []string) ([]Track, error) {
	query, err := idsQuery(trackIDs, 50)
	if err != nil {
		return nil, err
	}

	var response struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, "/tracks", query, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}

// SavedTracks retrieves a page of the user's saved tracks.
func (c *Client) SavedTracks(ctx context.Context, limit, offset int) (*Page[SavedTrack], error) {
	var page Page[SavedTrack]
	if err := c.get(ctx, "/me/tracks", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SaveTracks adds tracks to the user's library (up to 50).
func (c *Client) SaveTracks(ctx context.Context, trackIDs []string) error {
	query, err := idsQuery(trackIDs, 50)
	if err != nil {
		return err
	}
	return c.put(ctx, "/me/tracks", query, nil, nil)
}

// RemoveSavedTracks removes tracks from the user's library (up to 50).
func (c *Client) RemoveSavedTracks(ctx context.Context, trackIDs []string) error {
	query, err := idsQuery(trackIDs, 50)
	if err != nil {
		return err
	}
	return c.delete(ctx, "/me/tracks", query, nil, nil)
}

// CheckSavedTracks reports, per ID, whether the track is in the user's
// library (up to 50).
func (c *Client) CheckSavedTracks(ctx context.Context, trackIDs []string) ([]bool, error) {
	query, err := idsQuery(trackIDs, 50)
	if err != nil {
		return nil, err
	}

	var saved []bool
	if err := c.get(ctx, "/me/tracks/contains", query, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// SearchTracks searches the catalog for tracks matching q.
func (c *Client) SearchTracks(ctx context.Context, q string, limit, offset int) (*Page[Track], error) {
	query := pageQuery(limit, offset)
	query.Set("q", q)
	query.Set("type", "track")

	var response struct {
		Tracks Page[Track] `json:"tracks"`
	}
	if err := c.get(ctx, "/search", query, &response); err != nil {
		return nil, err
	}
	return &response.Tracks, nil
}
