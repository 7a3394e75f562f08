package spotify

import "context"

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User retrieves a public user profile by ID.
func (c *Client) User(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
