package app

import "context"

func lookup(ctx context.Context, u *Users) (*User, error) {
	return u.GetUser(ctx, 1, "")
}
