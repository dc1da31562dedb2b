// Package engine computes, for one captured change event, which subscribers
// are authorized to see it and which of its columns the viewer role may read.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"changegate/internal/entities"
	"changegate/internal/eval"
	"changegate/internal/oracle"
)

//go:generate mockgen -destination=mocks/mock_catalog_repository.go -package=mocks changegate/internal/engine CatalogRepository
type CatalogRepository interface {
	ResolveRelation(ctx context.Context, entity entities.Entity) (*entities.Relation, error)
	SelectableColumns(ctx context.Context, rel *entities.Relation, role string) ([]entities.RelationColumn, error)
}

//go:generate mockgen -destination=mocks/mock_subscriptions_repository.go -package=mocks changegate/internal/engine SubscriptionsRepository
type SubscriptionsRepository interface {
	ListForEntity(ctx context.Context, entity entities.Entity) ([]entities.Subscription, error)
}

//go:generate mockgen -destination=mocks/mock_row_oracle.go -package=mocks changegate/internal/engine RowOracle
type RowOracle interface {
	PrepareExistenceCheck(ctx context.Context, rel *entities.Relation, pkColumns []string) (oracle.ExistenceCheck, error)
}

//go:generate mockgen -destination=mocks/mock_identity_scope.go -package=mocks changegate/internal/engine IdentityScope
type IdentityScope interface {
	ExecuteAsUser(ctx context.Context, userID string, fn func(ctx context.Context) error) error
}

// Engine evaluates one change event at a time. It holds no mutable state of
// its own; the identity scope it is built with must be exclusively owned by
// the worker running the evaluation.
type Engine struct {
	catalog    CatalogRepository
	subs       SubscriptionsRepository
	oracle     RowOracle
	scope      IdentityScope
	viewerRole string
}

func New(
	catalog CatalogRepository,
	subs SubscriptionsRepository,
	rowOracle RowOracle,
	scope IdentityScope,
	viewerRole string,
) *Engine {
	return &Engine{
		catalog:    catalog,
		subs:       subs,
		oracle:     rowOracle,
		scope:      scope,
		viewerRole: viewerRole,
	}
}

// Evaluate runs the event through resolution, the per-subscriber visibility
// loop, column redaction and annotation. Only an unresolvable entity (or an
// identity-restoration failure, which must halt the worker) aborts the event;
// every per-subscriber failure is recorded and treated as "this subscriber
// does not see this change".
func (e *Engine) Evaluate(ctx context.Context, event *entities.ChangeEvent) (*entities.EvaluationResult, error) {
	result := &entities.EvaluationResult{}

	rel, err := e.catalog.ResolveRelation(ctx, event.Entity())
	if err != nil {
		return nil, err
	}
	result.IsRLSEnabled = rel.RLSEnabled

	// One grant lookup per event. A lookup failure means no visible columns,
	// the row is still reportable through its visibility metadata.
	var grantedColumns []entities.RelationColumn
	grantedColumns, err = e.catalog.SelectableColumns(ctx, rel, e.viewerRole)
	if err != nil {
		result.Errors = append(result.Errors, &entities.GrantLookupError{
			Entity: rel.Entity(), Role: e.viewerRole, Err: err,
		})
		grantedColumns = nil
	}

	subscriptions, err := e.subs.ListForEntity(ctx, rel.Entity())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate subscriptions for %s: %w", rel.Entity(), err)
	}

	visibleTo, err := e.visibleSubscribers(ctx, rel, event, subscriptions, result)
	if err != nil {
		return nil, err
	}

	result.SubscriptionIDs = visibleTo
	result.Annotated = annotate(event, redactColumns(event.Columns, grantedColumns), rel.RLSEnabled, visibleTo)

	return result, nil
}

// visibleSubscribers is the per-subscriber loop. With RLS inactive every
// subscriber is trivially visible and the oracle is skipped entirely; the
// annotated is_rls_enabled flag tells consumers no oracle filtering occurred.
func (e *Engine) visibleSubscribers(
	ctx context.Context,
	rel *entities.Relation,
	event *entities.ChangeEvent,
	subscriptions []entities.Subscription,
	result *entities.EvaluationResult,
) ([]string, error) {
	visibleTo := make([]string, 0, len(subscriptions))
	seen := make(map[string]struct{}, len(subscriptions))

	appendVisible := func(userID string) {
		if _, ok := seen[userID]; ok {
			return
		}
		seen[userID] = struct{}{}
		visibleTo = append(visibleTo, userID)
	}

	if !rel.RLSEnabled {
		for _, sub := range subscriptions {
			appendVisible(sub.UserID)
		}
		return visibleTo, nil
	}

	check, pkValues, checkErr := e.prepareRowCheck(ctx, rel, event, subscriptions)
	if check != nil {
		defer func() {
			if err := check.Close(); err != nil {
				log.FromContext(ctx).
					WithField("entity", rel.Entity().String()).
					WithField("error", err).
					Warn("Failed to close existence check")
			}
		}()
	}

	for _, sub := range subscriptions {
		if excluded := e.applyFilters(event, sub, result); excluded {
			continue
		}

		// Deletes and truncates refer to rows that no longer exist, so the
		// existence check cannot prove anything; filter-passing subscribers
		// keep their visibility, the security block still reports RLS state.
		if event.Action == entities.ActionDelete || event.Action == entities.ActionTruncate {
			appendVisible(sub.UserID)
			continue
		}

		if checkErr != nil {
			result.Errors = append(result.Errors, &entities.OracleExecutionError{
				SubscriptionID: sub.ID.String(), UserID: sub.UserID, Err: checkErr,
			})
			continue
		}

		var visible bool
		err := e.scope.ExecuteAsUser(ctx, sub.UserID, func(ctx context.Context) error {
			var rowErr error
			visible, rowErr = check.RowExists(ctx, pkValues)
			return rowErr
		})
		if errors.Is(err, entities.ErrIdentityNotRestored) {
			return nil, err
		}
		if err != nil {
			result.Errors = append(result.Errors, &entities.OracleExecutionError{
				SubscriptionID: sub.ID.String(), UserID: sub.UserID, Err: err,
			})
			continue
		}

		if visible {
			appendVisible(sub.UserID)
		}
	}

	return visibleTo, nil
}

// prepareRowCheck builds the one existence check shared by every subscriber
// of this event. Preparation problems are not fatal: they exclude each
// affected subscriber fail-closed when the loop reaches the oracle step.
func (e *Engine) prepareRowCheck(
	ctx context.Context,
	rel *entities.Relation,
	event *entities.ChangeEvent,
	subscriptions []entities.Subscription,
) (oracle.ExistenceCheck, []string, error) {
	if len(subscriptions) == 0 {
		return nil, nil, nil
	}
	if event.Action == entities.ActionDelete || event.Action == entities.ActionTruncate {
		return nil, nil, nil
	}

	pkNames, pkValues, err := event.PKValues()
	if err != nil {
		return nil, nil, err
	}

	check, err := e.oracle.PrepareExistenceCheck(ctx, rel, pkNames)
	if err != nil {
		return nil, nil, err
	}

	return check, pkValues, nil
}

// applyFilters evaluates every user filter of one subscription against the
// event's column values. Any filter that is false or cannot be evaluated
// excludes the subscription; an absent filter list means unconditional
// candidacy.
func (e *Engine) applyFilters(event *entities.ChangeEvent, sub entities.Subscription, result *entities.EvaluationResult) bool {
	for _, filter := range sub.Filters {
		op, err := eval.ParseOp(filter.Op)
		if err != nil {
			result.Errors = append(result.Errors, &entities.FilterCoercionError{
				SubscriptionID: sub.ID.String(), Column: filter.ColumnName, Err: err,
			})
			return true
		}

		column, ok := event.Column(filter.ColumnName)
		if !ok {
			result.Errors = append(result.Errors, &entities.FilterCoercionError{
				SubscriptionID: sub.ID.String(),
				Column:         filter.ColumnName,
				Err:            fmt.Errorf("column not present in change event"),
			})
			return true
		}
		if column.Value == nil {
			result.Errors = append(result.Errors, &entities.FilterCoercionError{
				SubscriptionID: sub.ID.String(),
				Column:         filter.ColumnName,
				Err:            fmt.Errorf("column value is null"),
			})
			return true
		}

		match, err := eval.Evaluate(op, column.Type, entities.ValueText(column.Value), filter.Value)
		if err != nil {
			result.Errors = append(result.Errors, &entities.FilterCoercionError{
				SubscriptionID: sub.ID.String(), Column: filter.ColumnName, Err: err,
			})
			return true
		}
		if !match {
			return true
		}
	}

	return false
}
