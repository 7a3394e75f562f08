package spotify

import "context"

// Album retrieves a single album by ID.
func (c *Client) Album(ctx context.Context, albumID string) (*Album, error) {
	var album Album
	if err := c.get(ctx, "/albums/"+albumID, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Albums retrieves multiple albums by their IDs (up to 20).
func (c *Client) Albums(ctx context.Context, albumIDs []string) ([]Album, error) {
	query, err := idsQuery(albumIDs, 20)
	if err != nil {
		return nil, err
	}

	var response struct {
		Albums []Album `json:"albums"`
	}
	if err := c.get(ctx, "/albums", query, &response); err != nil {
		return nil, err
	}
	return response.Albums, nil
}

// AlbumTracks retrieves a page of an album's tracks.
func (c *Client) AlbumTracks(ctx context.Context, albumID string, limit, offset int) (*Page[SimpleTrack], error) {
	var page Page[SimpleTrack]
	if err := c.get(ctx, "/albums/"+albumID+"/tracks", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SavedAlbums retrieves a page of the user's saved albums.
func (c *Client) SavedAlbums(ctx context.Context, limit, offset int) (*Page[SavedAlbum], error) {
	var page Page[SavedAlbum]
	if err := c.get(ctx, "/me/albums", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
