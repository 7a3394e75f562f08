package spotify

// Image represents an image resource (album art, profile pictures).
// Dimensions are absent in some API contexts.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// ExternalURLs carries known external links for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// ExternalIDs carries known external identifiers for a track.
type ExternalIDs struct {
	ISRC string `json:"isrc"`
	EAN  string `json:"ean"`
	UPC  string `json:"upc"`
}

// Followers reports follower counts where the API includes them.
type Followers struct {
	Total int `json:"total"`
}

// SimpleArtist is the reduced artist object embedded in tracks and albums.
type SimpleArtist struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	URI          string        `json:"uri"`
	ExternalURLs *ExternalURLs `json:"external_urls"`
}

// Artist is the full artist object.
type Artist struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	URI          string        `json:"uri"`
	Genres       []string      `json:"genres"`
	Popularity   int           `json:"popularity"`
	Images       []Image       `json:"images"`
	Followers    *Followers    `json:"followers"`
	ExternalURLs *ExternalURLs `json:"external_urls"`
}

// SimpleAlbum is the reduced album object embedded in tracks and artist
// discographies.
type SimpleAlbum struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	AlbumType    string         `json:"album_type"`
	ReleaseDate  string         `json:"release_date"`
	TotalTracks  int            `json:"total_tracks"`
	URI          string         `json:"uri"`
	Artists      []SimpleArtist `json:"artists"`
	Images       []Image        `json:"images"`
	ExternalURLs *ExternalURLs  `json:"external_urls"`
}

// Album is the full album object.
type Album struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	AlbumType    string             `json:"album_type"`
	ReleaseDate  string             `json:"release_date"`
	TotalTracks  int                `json:"total_tracks"`
	URI          string             `json:"uri"`
	Label        string             `json:"label"`
	Popularity   int                `json:"popularity"`
	Genres       []string           `json:"genres"`
	Artists      []SimpleArtist     `json:"artists"`
	Images       []Image            `json:"images"`
	Tracks       *Page[SimpleTrack] `json:"tracks"`
	ExternalURLs *ExternalURLs      `json:"external_urls"`
}

// SimpleTrack is the reduced track object used in album listings.
type SimpleTrack struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	URI          string         `json:"uri"`
	DurationMS   int            `json:"duration_ms"`
	Explicit     bool           `json:"explicit"`
	TrackNumber  int            `json:"track_number"`
	DiscNumber   int            `json:"disc_number"`
	Artists      []SimpleArtist `json:"artists"`
	ExternalURLs *ExternalURLs  `json:"external_urls"`
}

// Track is the full track object.
type Track struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	URI          string         `json:"uri"`
	Type         string         `json:"type"`
	DurationMS   int            `json:"duration_ms"`
	Explicit     bool           `json:"explicit"`
	Popularity   int            `json:"popularity"`
	TrackNumber  int            `json:"track_number"`
	DiscNumber   int            `json:"disc_number"`
	Album        SimpleAlbum    `json:"album"`
	Artists      []SimpleArtist `json:"artists"`
	ExternalIDs  *ExternalIDs   `json:"external_ids"`
	ExternalURLs *ExternalURLs  `json:"external_urls"`
}

// SavedTrack is a track in the user's library with its save timestamp.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// SavedAlbum is an album in the user's library with its save timestamp.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// User represents a Spotify user profile. Email, country, and product are
// only present for the current user with the matching scopes granted.
type User struct {
	ID           string        `json:"id"`
	DisplayName  string        `json:"display_name"`
	Email        string        `json:"email"`
	Country      string        `json:"country"`
	Product      string        `json:"product"`
	URI          string        `json:"uri"`
	Followers    *Followers    `json:"followers"`
	Images       []Image       `json:"images"`
	ExternalURLs *ExternalURLs `json:"external_urls"`
}

// PlaylistOwner is the reduced user object embedded in playlists.
type PlaylistOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// TrackRef is the track count stub carried by playlists in list contexts.
type TrackRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplePlaylist is the playlist object used in listings; its tracks field
// only carries a count.
type SimplePlaylist struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Public       bool          `json:"public"`
	URI          string        `json:"uri"`
	SnapshotID   string        `json:"snapshot_id"`
	Owner        PlaylistOwner `json:"owner"`
	Tracks       TrackRef      `json:"tracks"`
	Images       []Image       `json:"images"`
	ExternalURLs *ExternalURLs `json:"external_urls"`
}

// Playlist is the full playlist object including its first page of items.
type Playlist struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Public        bool                `json:"public"`
	Collaborative bool                `json:"collaborative"`
	URI           string              `json:"uri"`
	SnapshotID    string              `json:"snapshot_id"`
	Owner         PlaylistOwner       `json:"owner"`
	Tracks        Page[PlaylistEntry] `json:"tracks"`
	Images        []Image             `json:"images"`
	Followers     *Followers          `json:"followers"`
	ExternalURLs  *ExternalURLs       `json:"external_urls"`
}

// PlaylistEntry wraps one playlist item with its playlist-context
// metadata. The item itself is polymorphic, see [PlayableItem].
type PlaylistEntry struct {
	AddedAt string       `json:"added_at"`
	Item    PlayableItem `json:"track"`
}

// Snapshot is returned by playlist mutations.
type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`
}

// Device is a playback device known to the user's account.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent *int   `json:"volume_percent"`
}

// PlaybackContext describes what the playback was started from.
type PlaybackContext struct {
	Type         string        `json:"type"`
	URI          string        `json:"uri"`
	ExternalURLs *ExternalURLs `json:"external_urls"`
}

// PlaybackState is the current playback snapshot for the user.
type PlaybackState struct {
	Device       *Device          `json:"device"`
	IsPlaying    bool             `json:"is_playing"`
	ProgressMS   int              `json:"progress_ms"`
	ShuffleState bool             `json:"shuffle_state"`
	RepeatState  string           `json:"repeat_state"`
	Context      *PlaybackContext `json:"context"`
	Item         *PlayableItem    `json:"item"`
}
