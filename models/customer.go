package models

import "time"

type Customer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Wishlist  []string  `json:"wishlist"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicView strips fields that never leave the server.
func (c Customer) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"id":         c.ID,
		"first_name": c.FirstName,
		"email":      c.Email,
		"phone":      c.Phone,
		"created_at": c.CreatedAt,
	}
}

// AddToWishlist returns the wishlist with productID included. Adding an id
// that is already present is a no-op.
func AddToWishlist(wishlist []string, productID string) []string {
	for _, id := range wishlist {
		if id == productID {
			return wishlist
		}
	}
	return append(wishlist, productID)
}

// RemoveFromWishlist returns the wishlist without productID. Removing an
// absent id is a no-op.
func RemoveFromWishlist(wishlist []string, productID string) []string {
	out := make([]string, 0, len(wishlist))
	for _, id := range wishlist {
		if id != productID {
			out = append(out, id)
		}
	}
	return out
}
