package server

import (
	"context"
	"encoding/json"
	"errors"

	"activity-portal/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSessions struct {
	db *gorm.DB
}

func newGormSessions(conn *gorm.DB) *gormSessions {
	return &gormSessions{db: conn}
}

func (g *gormSessions) find(ctx context.Context, id string) (db.Session, bool, error) {
	var record db.Session
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Session{}, false, nil
	}
	if err != nil {
		return db.Session{}, false, err
	}
	return record, true, nil
}

func (g *gormSessions) upsert(ctx context.Context, record db.Session, columns ...string) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(&record).Error
}

func (g *gormSessions) LoadStatus(ctx context.Context, id string) (Status, error) {
	record, ok, err := g.find(ctx, id)
	if err != nil || !ok || record.StatusExpiresAt == nil {
		return Status{}, err
	}
	return Status{
		Text:      record.StatusText,
		Kind:      StatusKind(record.StatusKind),
		ExpiresAt: *record.StatusExpiresAt,
	}, nil
}

func (g *gormSessions) SaveStatus(ctx context.Context, id string, status Status) error {
	expiresAt := status.ExpiresAt
	return g.upsert(ctx, db.Session{
		ID:              id,
		StatusText:      status.Text,
		StatusKind:      string(status.Kind),
		StatusExpiresAt: &expiresAt,
	}, "status_text", "status_kind", "status_expires_at")
}

func (g *gormSessions) LoadDraft(ctx context.Context, id string) (FormDraft, error) {
	record, ok, err := g.find(ctx, id)
	if err != nil || !ok {
		return FormDraft{}, err
	}
	return FormDraft{Email: record.DraftEmail, Activity: record.DraftActivity}, nil
}

func (g *gormSessions) SaveDraft(ctx context.Context, id string, draft FormDraft) error {
	return g.upsert(ctx, db.Session{
		ID:            id,
		DraftEmail:    draft.Email,
		DraftActivity: draft.Activity,
	}, "draft_email", "draft_activity")
}

func (g *gormSessions) SavePage(ctx context.Context, id string, page PageState) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return g.upsert(ctx, db.Session{
		ID:   id,
		Page: datatypes.JSON(payload),
	}, "page", "page_held")
}

func (g *gormSessions) HoldPage(ctx context.Context, id string) error {
	return g.upsert(ctx, db.Session{ID: id, PageHeld: true}, "page_held")
}

func (g *gormSessions) TakeHeldPage(ctx context.Context, id string) (PageState, bool, error) {
	released := g.db.WithContext(ctx).
		Model(&db.Session{}).
		Where("id = ? AND page_held", id).
		Update("page_held", false)
	if released.Error != nil {
		return PageState{}, false, released.Error
	}
	if released.RowsAffected == 0 {
		return PageState{}, false, nil
	}
	record, ok, err := g.find(ctx, id)
	if err != nil || !ok || len(record.Page) == 0 {
		return PageState{}, false, err
	}
	var page PageState
	if err := json.Unmarshal(record.Page, &page); err != nil {
		return PageState{}, false, err
	}
	return page, true, nil
}
