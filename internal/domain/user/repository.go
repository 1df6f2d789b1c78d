package user

import "context"

type ProfileRepository interface {
	ListProfilesByIDs(ctx context.Context, userIDs []string) ([]Profile, error)
}
