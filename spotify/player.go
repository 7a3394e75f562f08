package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CurrentPlayback retrieves the user's playback state. A nil state with a
// nil error means no active playback (the API answers 204).
func (c *Client) CurrentPlayback(ctx context.Context) (*PlaybackState, error) {
	var state PlaybackState
	decoded, err := c.getOptional(ctx, "/me/player", nil, &state)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &state, nil
}

// Devices lists the playback devices known to the user's account.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var response struct {
		Devices []Device `json:"devices"`
	}
	if err := c.get(ctx, "/me/player/devices", nil, &response); err != nil {
		return nil, err
	}
	return response.Devices, nil
}

// Play resumes playback, or starts playing contextURI when it is non-empty
// (an album, artist, or playlist URI).
func (c *Client) Play(ctx context.Context, contextURI string) error {
	var body any
	if contextURI != "" {
		body = map[string]any{"context_uri": contextURI}
	}
	return c.put(ctx, "/me/player/play", nil, body, nil)
}

// Pause pauses playback on the active device.
func (c *Client) Pause(ctx context.Context) error {
	return c.put(ctx, "/me/player/pause", nil, nil, nil)
}

// NextTrack skips playback to the next track.
func (c *Client) NextTrack(ctx context.Context) error {
	return c.post(ctx, "/me/player/next", nil, nil, nil)
}

// PreviousTrack skips playback to the previous track.
func (c *Client) PreviousTrack(ctx context.Context) error {
	return c.post(ctx, "/me/player/previous", nil, nil, nil)
}

// SetVolume sets the active device's volume, 0 to 100.
func (c *Client) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", percent)
	}
	query := url.Values{"volume_percent": {strconv.Itoa(percent)}}
	return c.put(ctx, "/me/player/volume", query, nil, nil)
}
