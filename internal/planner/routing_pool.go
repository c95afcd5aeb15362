package planner

import (
	"context"
	"sync"

	"github.com/Yeong-ho/jeju-onul-api/internal/metrics"
	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/pkg/logger"
	"github.com/Yeong-ho/jeju-onul-api/pkg/routing"
	"github.com/redis/go-redis/v9"
)

// enrichJob is one vehicle's ordered task list awaiting per-leg duration
// and distance enrichment.
type enrichJob struct {
	profile models.Profile
	tasks   []models.Task
}

// routingPool fans out route-leg enrichment across a bounded number of
// workers so reconciliation doesn't serialize one routing-collaborator
// round trip per vehicle.
type routingPool struct {
	client  *routing.Client
	cache   *legCache
	workers int
	log     *logger.Logger
}

func newRoutingPool(client *routing.Client, cache *legCache, workers int, log *logger.Logger) *routingPool {
	if workers <= 0 {
		workers = 50
	}
	return &routingPool{client: client, cache: cache, workers: workers, log: log}
}

// NewRoutingPool builds a routing enrichment worker pool for use in
// planner.Deps.Pool. rdb may be nil, in which case enrichment always calls
// the routing collaborator directly instead of checking a cache first.
func NewRoutingPool(client *routing.Client, rdb *redis.Client, workers int, log *logger.Logger) *routingPool {
	var cache *legCache
	if rdb != nil {
		cache = newLegCache(rdb)
	}
	return newRoutingPool(client, cache, workers, log)
}

// enrichAll fills in Duration/Distance on every job's tasks (task i+1 gets
// the leg from task i to task i+1), skipping jobs with fewer than two
// tasks. Routing failures are logged and skipped, never fatal: an
// unenriched leg simply keeps its zero duration/distance.
func (p *routingPool) enrichAll(ctx context.Context, jobs []enrichJob) {
	queue := make(chan int, len(jobs))
	for i := range jobs {
		if len(jobs[i].tasks) > 1 {
			queue <- i
		}
	}
	close(queue)

	workerCount := p.workers
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}
	if workerCount == 0 {
		return
	}

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				select {
				case <-ctx.Done():
					return
				default:
				}
				p.enrichOne(ctx, &jobs[i])
			}
		}()
	}
	wg.Wait()
}

func (p *routingPool) enrichOne(ctx context.Context, job *enrichJob) {
	locations := make([]models.Coordinate, len(job.tasks))
	for i, t := range job.tasks {
		locations[i] = t.Location
	}

	if p.cache != nil {
		if legs, ok := p.cache.get(ctx, job.profile, locations); ok {
			applyLegs(job.tasks, legs)
			metrics.RoutingCacheHitsTotal.Inc()
			return
		}
		metrics.RoutingCacheMissesTotal.Inc()
	}

	resp, err := p.client.Routes(ctx, job.profile, locations)
	if err != nil {
		p.log.RoutingEnrichmentFailed(string(job.profile), err)
		return
	}
	if resp == nil || len(resp.Routes) == 0 {
		return
	}

	legs := resp.Routes[0].Legs
	applyLegs(job.tasks, legs)

	if p.cache != nil {
		p.cache.set(ctx, job.profile, locations, legs)
	}
}

func applyLegs(tasks []models.Task, legs []routing.Leg) {
	for i, leg := range legs {
		if i+1 >= len(tasks) {
			break
		}
		tasks[i+1].Duration = leg.Duration
		tasks[i+1].Distance = leg.Distance
	}
}
