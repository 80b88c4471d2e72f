package jobs

import (
	"context"
	"log"

	"github.com/lcac-club/clubsite/internal/social"
)

// Refresher runs one social fetch-and-cache cycle. The cycle absorbs
// its own failures; the summary only reports what happened.
type Refresher interface {
	Refresh(ctx context.Context) social.RefreshSummary
}

// SocialRefreshTask runs the social cache refresh on the worker's
// schedule, unconditionally: failed cycles are logged, never fatal.
type SocialRefreshTask struct {
	refresher Refresher
}

func NewSocialRefreshTask(refresher Refresher) *SocialRefreshTask {
	return &SocialRefreshTask{refresher: refresher}
}

func (t *SocialRefreshTask) Run(ctx context.Context) error {
	summary := t.refresher.Refresh(ctx)
	if summary.OK {
		log.Printf("social refresh cached %d posts for #%s", summary.Count, summary.Hashtag)
	}
	return nil
}
