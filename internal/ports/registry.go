package ports

import (
	"context"

	"container-os/internal/types"
)

type TagListerPort interface {
	ListTags(ctx context.Context, repository string, prefix string) ([]types.Tag, error)
}

// TagAliasPort re-points alias to sourceTag. Errors wrapping
// types.ErrRateLimited may be retried by the caller.
type TagAliasPort interface {
	CreateTagAlias(ctx context.Context, repository string, alias string, sourceTag string) error
}
