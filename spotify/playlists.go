package spotify

import (
	"context"
	"fmt"
)

// Playlist retrieves a playlist by ID, including its first page of items.
func (c *Client) Playlist(ctx context.Context, playlistID string) (*Playlist, error) {
	var playlist Playlist
	if err := c.get(ctx, "/playlists/"+playlistID, nil, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// MyPlaylists retrieves a page of the current user's playlists.
func (c *Client) MyPlaylists(ctx context.Context, limit, offset int) (*Page[SimplePlaylist], error) {
	var page Page[SimplePlaylist]
	if err := c.get(ctx, "/me/playlists", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UserPlaylists retrieves a page of another user's public playlists.
func (c *Client) UserPlaylists(ctx context.Context, userID string, limit, offset int) (*Page[SimplePlaylist], error) {
	var page Page[SimplePlaylist]
	if err := c.get(ctx, "/users/"+userID+"/playlists", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaylistItems retrieves a page of a playlist's items. Items are
// polymorphic; see [PlayableItem].
func (c *Client) PlaylistItems(ctx context.Context, playlistID string, limit, offset int) (*Page[PlaylistEntry], error) {
	var page Page[PlaylistEntry]
	if err := c.get(ctx, "/playlists/"+playlistID+"/tracks", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePlaylist creates a playlist owned by the given user.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (*Playlist, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	var playlist Playlist
	if err := c.post(ctx, "/users/"+userID+"/playlists", nil, body, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddPlaylistItems appends items (by URI, up to 100) to a playlist and
// returns the new snapshot.
func (c *Client) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) (*Snapshot, error) {
	if len(uris) == 0 {
		return nil, fmt.Errorf("no URIs provided")
	}
	if len(uris) > 100 {
		return nil, fmt.Errorf("maximum 100 URIs allowed, got %d", len(uris))
	}

	body := map[string]any{"uris": uris}

	var snapshot Snapshot
	if err := c.post(ctx, "/playlists/"+playlistID+"/tracks", nil, body, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ChangePlaylistDetails updates a playlist's name, description, or
// visibility. Nil fields are left untouched.
func (c *Client) ChangePlaylistDetails(ctx context.Context, playlistID string, name, description *string, public *bool) error {
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if description != nil {
		body["description"] = *description
	}
	if public != nil {
		body["public"] = *public
	}
	if len(body) == 0 {
		return nil
	}
	return c.put(ctx, "/playlists/"+playlistID, nil, body, nil)
}
