package contracts

import (
	"context"

	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
)

// Committer applies commit plans atomically. *committer.Committer implements it.
type Committer interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
	ApplyWithVersionCheck(ctx context.Context, check committer.VersionCheck, plan *committer.CommitPlan) error
}
