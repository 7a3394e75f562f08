package spotify

import "encoding/json"

// PlayableItem is the polymorphic member of mixed result lists. Playlist
// items and the player's current item can be a track or an episode; the
// variant is decided by the payload's "type" discriminant before any
// further decoding.
//
// Only the track variant is decoded. Other discriminants (episodes in
// particular) are retained by name and surface as an
// [UnsupportedVariantError] from [PlayableItem.Track], never as a silent
// partial parse. One unrecognized item therefore does not fail the page it
// arrived in.
type PlayableItem struct {
	Type string

	track *Track
}

// UnmarshalJSON inspects the discriminant and dispatches to the matching
// variant decoder.
func (p *PlayableItem) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	p.Type = probe.Type
	p.track = nil

	if probe.Type == "track" {
		var t Track
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		p.track = &t
	}
	return nil
}

// Track returns the decoded track variant, or an [UnsupportedVariantError]
// naming the discriminant when the item is anything else.
func (p *PlayableItem) Track() (*Track, error) {
	if p.track != nil {
		return p.track, nil
	}
	return nil, &UnsupportedVariantError{Type: p.Type}
}

// IsTrack reports whether the item decoded as a track.
func (p *PlayableItem) IsTrack() bool {
	return p.track != nil
}
