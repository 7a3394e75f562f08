package spotify

import (
	"context"
	"net/url"
)

// Artist retrieves a single artist by ID.
func (c *Client) Artist(ctx context.Context, artistID string) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, "/artists/"+artistID, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// Artists retrieves multiple artists by their IDs (up to 50).
func (c *Client) Artists(ctx context.Context, artistIDs []string) ([]Artist, error) {
	query, err := idsQuery(artistIDs, 50)
	if err != nil {
		return nil, err
	}

	var response struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, "/artists", query, &response); err != nil {
		return nil, err
	}
	return response.Artists, nil
}

// ArtistAlbums retrieves a page of an artist's discography.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string, limit, offset int) (*Page[SimpleAlbum], error) {
	var page Page[SimpleAlbum]
	if err := c.get(ctx, "/artists/"+artistID+"/albums", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArtistTopTracks retrieves an artist's top tracks for a market
// (ISO 3166-1 alpha-2 country code).
func (c *Client) ArtistTopTracks(ctx context.Context, artistID, market string) ([]Track, error) {
	query := url.Values{"market": {market}}

	var response struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, "/artists/"+artistID+"/top-tracks", query, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}
