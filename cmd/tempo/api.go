package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/desertthunder/tempo/internal/shared"
	"github.com/desertthunder/tempo/spotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Profile fetches and prints the authenticated user's profile.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlain("User: %s\n", user.DisplayName)
	r.writePlain("ID: %s\n", user.ID)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	if user.Product != "" {
		r.writePlain("Product: %s\n", user.Product)
	}
	if user.Followers != nil {
		r.writePlain("Followers: %d\n", user.Followers.Total)
	}
	return nil
}

// TrackGet fetches a single track by ID.
func (r *Runner) TrackGet(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: track ID", shared.ErrMissingArgument)
	}

	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	track, err := client.Track(ctx, trackID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", track.Name)
	if len(track.Artists) > 0 {
		r.writePlain("Artist: %s\n", track.Artists[0].Name)
	}
	r.writePlain("Album: %s\n", track.Album.Name)
	r.writePlain("Duration: %ds\n", track.DurationMS/1000)
	return nil
}

// TrackSaved lists a page of the user's saved tracks.
func (r *Runner) TrackSaved(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	page, err := client.SavedTracks(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Saved tracks %d-%d of %d:\n\n", page.Offset+1, page.Offset+len(page.Items), page.Total)
	for i, saved := range page.Items {
		r.writePlain("%d. %s", page.Offset+i+1, saved.Track.Name)
		if len(saved.Track.Artists) > 0 {
			r.writePlain(" - %s", saved.Track.Artists[0].Name)
		}
		r.writePlain("\n")
	}
	return nil
}

// PlaylistList lists the current user's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	page, err := client.MyPlaylists(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlists:\n\n", page.Total)
	for i, p := range page.Items {
		r.writePlain("%d. %s\n", page.Offset+i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.Tracks.Total)
		r.writePlain("\n")
	}
	return nil
}

// PlaylistShow fetches a single playlist and prints its first page of
// items.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	playlist, err := client.Playlist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", playlist.Name)
	if playlist.Description != "" {
		r.writePlain("Description: %s\n", playlist.Description)
	}
	r.writePlain("Owner: %s\n", playlist.Owner.DisplayName)
	r.writePlain("Tracks: %d\n\n", playlist.Tracks.Total)
	for i, entry := range playlist.Tracks.Items {
		track, err := entry.Item.Track()
		if err != nil {
			r.writePlain("%d. [%s item]\n", i+1, entry.Item.Type)
			continue
		}
		r.writePlain("%d. %s", i+1, track.Name)
		if len(track.Artists) > 0 {
			r.writePlain(" - %s", track.Artists[0].Name)
		}
		r.writePlain("\n")
	}
	if playlist.Tracks.Next != nil {
		r.writePlain("\n... %d more, use: tempo playlist export --id %s\n",
			playlist.Tracks.Total-len(playlist.Tracks.Items), playlist.ID)
	}
	return nil
}

// PlaylistExport walks every page of a playlist and writes all items to a
// JSON file, pacing the page fetches with a rate limiter.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	if playlistID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	playlist, err := client.Playlist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	limiter := rate.NewLimiter(rate.Limit(cmd.Float("rate")), 1)
	entries, err := spotify.AllItems(ctx, client, &playlist.Tracks, limiter)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	type exportedTrack struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Artist   string `json:"artist,omitempty"`
		Album    string `json:"album,omitempty"`
		Duration int    `json:"duration_seconds"`
		AddedAt  string `json:"added_at,omitempty"`
	}

	export := struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Tracks  []exportedTrack `json:"tracks"`
		Skipped int             `json:"skipped_items"`
	}{ID: playlist.ID, Name: playlist.Name}

	for _, entry := range entries {
		track, err := entry.Item.Track()
		if err != nil {
			// Episodes and other unsupported variants are counted, not
			// silently dropped or misparsed.
			r.logger.Warnf("skipping playlist item: %v", err)
			export.Skipped++
			continue
		}

		t := exportedTrack{
			ID:       track.ID,
			Title:    track.Name,
			Duration: track.DurationMS / 1000,
			Album:    track.Album.Name,
			AddedAt:  entry.AddedAt,
		}
		if len(track.Artists) > 0 {
			t.Artist = track.Artists[0].Name
		}
		export.Tracks = append(export.Tracks, t)
	}

	outputFile := cmd.String("output")
	if outputFile == "" {
		outputFile = fmt.Sprintf("spotify_%s.json", playlist.ID)
	}

	data, err := shared.MarshalJSON(export, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.writePlain("✓ Playlist exported to %s\n", outputFile)
	r.writePlain("  Playlist: %s\n", playlist.Name)
	r.writePlain("  Tracks: %d\n", len(export.Tracks))
	if export.Skipped > 0 {
		r.writePlain("  Skipped: %d unsupported items\n", export.Skipped)
	}
	return nil
}

// PlayerStatus prints the current playback state.
func (r *Runner) PlayerStatus(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	state, err := client.CurrentPlayback(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if state == nil {
		r.writePlain("No active playback\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(state, cmd.Bool("pretty"))
	}

	if state.IsPlaying {
		r.writePlain("▶ Playing\n")
	} else {
		r.writePlain("⏸ Paused\n")
	}
	if state.Item != nil {
		if track, err := state.Item.Track(); err == nil {
			r.writePlain("Track: %s\n", track.Name)
			if len(track.Artists) > 0 {
				r.writePlain("Artist: %s\n", track.Artists[0].Name)
			}
		} else {
			r.writePlain("Item: %s (not a track)\n", state.Item.Type)
		}
	}
	if state.Device != nil {
		r.writePlain("Device: %s\n", state.Device.Name)
	}
	return nil
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	if err := client.Pause(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	r.writePlain("⏸ Paused\n")
	return nil
}

// PlayerPlay resumes playback.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	if err := client.Play(ctx, cmd.String("context")); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	r.writePlain("▶ Playing\n")
	return nil
}

// PlayerNext skips to the next track in the queue.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	if err := client.NextTrack(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	r.writePlain("⏭ Skipped to next track\n")
	return nil
}

// RawGet performs an authenticated GET against an arbitrary API path and
// prints the JSON response.
func (r *Runner) RawGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: API path", shared.ErrMissingArgument)
	}

	client, err := r.spotifyClient()
	if err != nil {
		return err
	}
	defer r.persistTokens()

	var payload any
	if err := client.Raw(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeJSON(payload, true)
}
