// Package orchestrator drives selected assets through their remote migration
// endpoints and keeps the run's per-item statuses current as results arrive.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

// ExistingAssetPolicy decides how an "already exists" migration result is
// classified. The console historically treats it as a failure; treating it
// as a successful no-op is available behind configuration.
type ExistingAssetPolicy string

const (
	FailOnExisting ExistingAssetPolicy = "fail"
	ReuseExisting  ExistingAssetPolicy = "reuse"
)

const (
	fallbackFailureMessage = "migration failed"
	notImplementedMessage  = "migration not yet implemented"
	alreadyExistsMessage   = "already exists"
)

var (
	ErrNoSelection    = errors.New("no assets selected")
	ErrRunNotFound    = errors.New("migration run not found")
	ErrNothingToRetry = errors.New("no failed items to retry")
)

// endpointFunc invokes one partition's remote migration endpoint with the
// full batch of refs for that kind.
type endpointFunc func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, targetWorkspaceID string, refs []string) (*remote.Outcome, error)

// partitionKey routes a partition to its endpoint. The same kind can map to
// different endpoints per source platform.
type partitionKey struct {
	Source models.Source
	Kind   models.AssetKind
}

func (k partitionKey) String() string {
	return fmt.Sprintf("%s/%s", k.Source, k.Kind)
}

// endpoints is the fixed kind-to-endpoint mapping. Kinds absent here (such
// as LinkedService) are reported as not implemented rather than dropped.
var endpoints = map[partitionKey]endpointFunc{
	{models.SourceSynapse, models.KindSparkPool}: func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, ws string, refs []string) (*remote.Outcome, error) {
		return c.MigrateSparkPools(ctx, creds, ws, refs)
	},
	{models.SourceSynapse, models.KindNotebook}: func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, ws string, refs []string) (*remote.Outcome, error) {
		return c.MigrateNotebooks(ctx, creds, ws, refs)
	},
	{models.SourceSynapse, models.KindPipeline}: func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, ws string, refs []string) (*remote.Outcome, error) {
		return c.MigratePipelines(ctx, creds, ws, refs)
	},
	{models.SourceDatabricks, models.KindNotebook}: func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, ws string, refs []string) (*remote.Outcome, error) {
		return c.MigrateDatabricksNotebooks(ctx, creds, ws, refs)
	},
	{models.SourceDatabricks, models.KindJob}: func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, ws string, refs []string) (*remote.Outcome, error) {
		return c.MigrateDatabricksJobs(ctx, creds, ws, refs)
	},
	{models.SourceDatabricks, models.KindCluster}: func(ctx context.Context, c *remote.Client, creds remote.MigrationCredentials, ws string, refs []string) (*remote.Outcome, error) {
		return c.MigrateDatabricksClusters(ctx, creds, ws, refs)
	},
}

// runContext is what a retry needs: the target and credentials captured at
// run start, and each item's endpoint ref. Never serialized.
type runContext struct {
	target models.TargetWorkspace
	creds  remote.MigrationCredentials
	refs   map[string]string // item ID → migration ref
}

// Orchestrator owns migration runs. Handlers start runs and retries through
// it and read progress from the run itself.
type Orchestrator struct {
	client *remote.Client
	runs   *models.RunStore
	policy ExistingAssetPolicy
	log    *zap.SugaredLogger

	mu   sync.Mutex
	ctxs map[string]*runContext
}

// New creates an Orchestrator.
func New(client *remote.Client, runs *models.RunStore, policy ExistingAssetPolicy, log *zap.SugaredLogger) *Orchestrator {
	if policy == "" {
		policy = FailOnExisting
	}
	return &Orchestrator{
		client: client,
		runs:   runs,
		policy: policy,
		log:    log,
		ctxs:   make(map[string]*runContext),
	}
}

// Start creates a run with every selected item already Running, publishes it
// to the store, and drives each kind partition through its remote endpoint
// concurrently. The returned run is mutated in place as partitions settle;
// callers render progress from it immediately.
func (o *Orchestrator) Start(selected []models.Asset, target models.TargetWorkspace, creds remote.MigrationCredentials) (*models.MigrationRun, error) {
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}

	run := models.NewRun(target.Name, selected)
	o.runs.Create(run)

	rc := &runContext{
		target: target,
		creds:  creds,
		refs:   make(map[string]string, len(selected)),
	}
	for i := range selected {
		rc.refs[selected[i].ID] = selected[i].MigrationRef()
	}
	o.mu.Lock()
	o.ctxs[run.ID] = rc
	o.mu.Unlock()

	run.AppendEvent(fmt.Sprintf("migration started: %d items into %q", len(run.Items()), target.Name))
	go o.execute(run, rc, run.Items())
	return run, nil
}

// RetryFailed re-arms exactly the Failed items of a run and re-invokes their
// endpoints with the target and credentials captured at run start. Success
// items are untouched.
func (o *Orchestrator) RetryFailed(runID string) (int, error) {
	run := o.runs.Get(runID)
	if run == nil {
		return 0, ErrRunNotFound
	}
	o.mu.Lock()
	rc := o.ctxs[runID]
	o.mu.Unlock()
	if rc == nil {
		return 0, ErrRunNotFound
	}

	rearmed := run.RearmFailed()
	if len(rearmed) == 0 {
		return 0, ErrNothingToRetry
	}

	run.AppendEvent(fmt.Sprintf("retrying %d failed items", len(rearmed)))
	go o.execute(run, rc, rearmed)
	return len(rearmed), nil
}

// execute settles every given item: each partition gets one batched endpoint
// call, partitions run concurrently, and one partition's failure never
// cancels another.
func (o *Orchestrator) execute(run *models.MigrationRun, rc *runContext, items []models.MigrationItem) {
	parts := partition(items)

	var wg sync.WaitGroup
	for key, group := range parts {
		ep, ok := endpoints[key]
		if !ok {
			for _, item := range group {
				run.UpdateItem(item.ID, models.StatusFailed, notImplementedMessage)
			}
			o.log.Warnw("unsupported asset kind in run",
				"run", run.ID, "partition", key.String(), "items", len(group))
			continue
		}
		wg.Add(1)
		go func(key partitionKey, group []models.MigrationItem) {
			defer wg.Done()
			o.migratePartition(run, rc, key, ep, group)
		}(key, group)
	}
	wg.Wait()

	counts := run.Counts()
	run.AppendEvent(fmt.Sprintf("migration finished: %d succeeded, %d failed", counts.Succeeded, counts.Failed))
	run.Finish()
	o.log.Infow("migration run settled",
		"run", run.ID, "target", run.TargetWorkspace,
		"succeeded", counts.Succeeded, "failed", counts.Failed)
}

// migratePartition issues one batched call and reconciles every item of the
// partition against the outcome. No item may stay Running after this
// returns, whatever the endpoint did.
func (o *Orchestrator) migratePartition(run *models.MigrationRun, rc *runContext, key partitionKey, ep endpointFunc, group []models.MigrationItem) {
	refs := make([]string, len(group))
	for i, item := range group {
		ref, ok := rc.refs[item.ID]
		if !ok {
			ref = item.Name
		}
		refs[i] = ref
	}

	outcome, err := ep(context.Background(), o.client, rc.creds, rc.target.ID, refs)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fmt.Sprintf("%s %s", key.Kind, fallbackFailureMessage)
		}
		for _, item := range group {
			run.UpdateItem(item.ID, models.StatusFailed, msg)
		}
		o.log.Warnw("partition migration failed",
			"run", run.ID, "partition", key.String(), "error", err)
		return
	}

	succeeded := toSet(outcome.Succeeded)
	existing := toSet(outcome.AlreadyExists)
	failures := make(map[string]string, len(outcome.Failed))
	for _, f := range outcome.Failed {
		failures[f.Ref] = f.Message
	}

	for i, item := range group {
		ref := refs[i]
		switch {
		case succeeded[ref]:
			run.UpdateItem(item.ID, models.StatusSuccess, "")
		case existing[ref]:
			if o.policy == ReuseExisting {
				run.UpdateItem(item.ID, models.StatusSuccess, "")
			} else {
				run.UpdateItem(item.ID, models.StatusFailed, alreadyExistsMessage)
			}
		default:
			msg, failed := failures[ref]
			if !failed || msg == "" {
				// The endpoint omitted the item or gave no detail; the
				// item must still settle.
				msg = fallbackFailureMessage
			}
			run.UpdateItem(item.ID, models.StatusFailed, msg)
		}
	}
}

// partition groups items by source platform and kind, preserving selection
// order within each group.
func partition(items []models.MigrationItem) map[partitionKey][]models.MigrationItem {
	parts := make(map[partitionKey][]models.MigrationItem)
	for _, item := range items {
		key := partitionKey{Source: item.Source, Kind: item.Kind}
		parts[key] = append(parts[key], item)
	}
	return parts
}

func toSet(refs []string) map[string]bool {
	set := make(map[string]bool, len(refs))
	for _, r := range refs {
		set[r] = true
	}
	return set
}
