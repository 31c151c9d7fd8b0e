// Package repo is the soft-delete and audit data-access layer. Every query it
// builds is scoped to one foundation and to either active or trashed rows, so
// callers cannot forget the is_deleted predicate.
package repo

import (
	"context"

	"donation_system/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the constraint satisfied by *domain.Donor and *domain.Donation
type Record[T any] interface {
	*T
	TableName() string
	AuditFields() *domain.Audit
}

// Scope adds predicates, joins or ordering to a scoped query
type Scope = func(*gorm.DB) *gorm.DB

// ListOptions controls List. A zero Limit means no limit.
type ListOptions struct {
	Offset int
	Limit  int
	Order  string
	Scopes []Scope
}

// Repository is the soft-delete aware store for one entity type
type Repository[T any, P Record[T]] struct {
	db       *gorm.DB // Database connection
	name     string   // entity name used in NotFound messages
	preloads []string // associations loaded on every read
}

// New builds a repository for T. name is used in error messages.
func New[T any, P Record[T]](db *gorm.DB, name string, preloads ...string) *Repository[T, P] {
	return &Repository[T, P]{db: db, name: name, preloads: preloads}
}

func (r *Repository[T, P]) table() string {
	return P(new(T)).TableName()
}

// Column qualifies col with the entity's table name
func (r *Repository[T, P]) Column(col string) string {
	return r.table() + "." + col
}

// scoped is the single place the tenancy and soft-delete predicates are applied
func (r *Repository[T, P]) scoped(ctx context.Context, foundationID string, trashed bool) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T)).
		Where(r.Column("foundation_id")+" = ?", foundationID). // Tenant
		Where(r.Column("is_deleted")+" = ?", trashed)          // Active or trash
	for _, p := range r.preloads {
		q = q.Preload(p) // Load associations
	}
	return q
}

func (r *Repository[T, P]) notFound() error {
	return domain.NotFound(r.name)
}

// Create inserts entity under foundationID with fresh audit stamps
func (r *Repository[T, P]) Create(ctx context.Context, foundationID string, entity P, actorID string) (P, error) {
	a := entity.AuditFields()
	a.ID = ""                     // Assigned in BeforeCreate
	a.FoundationID = foundationID // Caller's foundation, never the body's
	a.IsDeleted = false
	a.CreatedBy = actorID
	a.UpdatedBy = actorID
	// Insert the row without touching associations
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return nil, errors.Wrapf(err, "create %s", r.name)
	}
	return r.FindOne(ctx, foundationID, a.ID) // Reload with preloads
}

// FindOne returns the active row with id, or NotFound
func (r *Repository[T, P]) FindOne(ctx context.Context, foundationID, id string) (P, error) {
	return r.first(ctx, foundationID, id, false)
}

func (r *Repository[T, P]) first(ctx context.Context, foundationID, id string, trashed bool) (P, error) {
	var out T
	err := r.scoped(ctx, foundationID, trashed).
		Where(r.Column("id")+" = ?", id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound() // Missing, foreign or in the wrong state
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", r.name)
	}
	return P(&out), nil
}

// FindFirst returns the first active row matching scopes, or NotFound
func (r *Repository[T, P]) FindFirst(ctx context.Context, foundationID string, scopes ...Scope) (P, error) {
	var out T
	err := r.scoped(ctx, foundationID, false).Scopes(scopes...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", r.name)
	}
	return P(&out), nil
}

// List returns active rows matching opts
func (r *Repository[T, P]) List(ctx context.Context, foundationID string, opts ListOptions) ([]T, error) {
	q := r.scoped(ctx, foundationID, false).Scopes(opts.Scopes...)
	if opts.Order != "" {
		q = q.Order(opts.Order)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset) // Skip earlier pages
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit) // Page size
	}
	out := make([]T, 0) // Encodes as [] when empty
	if err := q.Find(&out).Error; err != nil {
		return nil, errors.Wrapf(err, "list %s", r.name)
	}
	return out, nil
}

// Count returns the number of active rows matching scopes
func (r *Repository[T, P]) Count(ctx context.Context, foundationID string, scopes ...Scope) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(new(T)).
		Where(r.Column("foundation_id")+" = ?", foundationID).
		Where(r.Column("is_deleted")+" = ?", false).
		Scopes(scopes...)
	if err := q.Count(&total).Error; err != nil {
		return 0, errors.Wrapf(err, "count %s", r.name)
	}
	return total, nil
}

// ListTrashed returns soft-deleted rows, most recently changed first
func (r *Repository[T, P]) ListTrashed(ctx context.Context, foundationID string) ([]T, error) {
	out := make([]T, 0)
	err := r.scoped(ctx, foundationID, true).
		Order(r.Column("updated_at") + " DESC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list trashed %s", r.name)
	}
	return out, nil
}

// Update merges fields into the active row with id and stamps updated_by.
// Soft-deleted rows are never updated.
func (r *Repository[T, P]) Update(ctx context.Context, foundationID, id string, fields map[string]any, actorID string) (P, error) {
	// Check the row is active in this foundation
	if _, err := r.FindOne(ctx, foundationID, id); err != nil {
		return nil, err
	}
	delete(fields, "is_deleted") // deletion state only changes through SoftDelete and Restore
	if err := r.write(ctx, foundationID, id, false, fields, actorID); err != nil {
		return nil, err
	}
	return r.FindOne(ctx, foundationID, id)
}

// SoftDelete flags the active row with id as deleted. Deleting a row that is
// already deleted returns NotFound and leaves it untouched.
func (r *Repository[T, P]) SoftDelete(ctx context.Context, foundationID, id, actorID string) error {
	// Check the row is still active
	if _, err := r.FindOne(ctx, foundationID, id); err != nil {
		return err
	}
	return r.write(ctx, foundationID, id, false, map[string]any{"is_deleted": true}, actorID)
}

// Restore clears the deleted flag. Only valid on a soft-deleted row.
func (r *Repository[T, P]) Restore(ctx context.Context, foundationID, id, actorID string) (P, error) {
	// Check the row is in the trash
	if _, err := r.first(ctx, foundationID, id, true); err != nil {
		return nil, err
	}
	if err := r.write(ctx, foundationID, id, true, map[string]any{"is_deleted": false}, actorID); err != nil {
		return nil, err
	}
	return r.FindOne(ctx, foundationID, id)
}

// write applies fields to one row, guarded by the row's expected deletion state.
func (r *Repository[T, P]) write(ctx context.Context, foundationID, id string, trashed bool, fields map[string]any, actorID string) error {
	for _, immutable := range []string{"id", "foundation_id", "created_by", "created_at"} {
		delete(fields, immutable)
	}
	fields["updated_by"] = actorID // updated_at is stamped by gorm
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND foundation_id = ? AND is_deleted = ?", id, foundationID, trashed).
		Updates(fields)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update %s", r.name)
	}
	if res.RowsAffected == 0 {
		return r.notFound() // Changed state since the check
	}
	return nil
}
