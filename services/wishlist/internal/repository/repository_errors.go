package repository

import "errors"

var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrNotInWishlist        = errors.New("item not found in wishlist")
	ErrAlreadyInWishlist    = errors.New("item already in wishlist")
)
