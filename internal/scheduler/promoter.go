// Package scheduler publishes scheduled posts once their time has come.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Second

// DuePostPromoter is satisfied by services.PostService.
type DuePostPromoter interface {
	PromoteDuePosts(ctx context.Context) (int, error)
}

type Promoter struct {
	cron  *cron.Cron
	posts DuePostPromoter
	log   *slog.Logger
}

// NewPromoter registers a promotion run on the cron schedule spec
// (e.g. "@every 1m"). Overlapping runs are skipped.
func NewPromoter(posts DuePostPromoter, spec string, log *slog.Logger) (*Promoter, error) {
	p := &Promoter{
		cron:  cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		posts: posts,
		log:   log,
	}
	if _, err := p.cron.AddFunc(spec, p.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid promote schedule %q: %w", spec, err)
	}
	return p, nil
}

// RunOnce promotes every due post and logs the outcome.
func (p *Promoter) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	n, err := p.posts.PromoteDuePosts(ctx)
	if err != nil {
		p.log.Error("promote scheduled posts", "error", err)
		return
	}
	if n > 0 {
		p.log.Info("scheduled posts published", "count", n)
	}
}

func (p *Promoter) Start() {
	p.cron.Start()
	p.log.Info("post promoter started", "entries", len(p.cron.Entries()))
}

// Stop waits for a running promotion to finish.
func (p *Promoter) Stop() {
	<-p.cron.Stop().Done()
}
