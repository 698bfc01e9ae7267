package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordRow persists one Record as a JSON document.
type recordRow struct {
	Collection string    `gorm:"primaryKey;type:varchar(64)"`
	ID         string    `gorm:"primaryKey;type:varchar(191)"`
	Data       string    `gorm:"type:text;not null"`
	Seq        int64     `gorm:"index"` // insertion order
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (recordRow) TableName() string { return "records" }

// GORMClient is a Client backed by a relational database through GORM.
type GORMClient struct {
	db *gorm.DB
}

// NewGORMClient creates a GORMClient. Call Migrate once before use.
func NewGORMClient(db *gorm.DB) *GORMClient {
	return &GORMClient{db: db}
}

// Migrate creates or updates the records table.
func (c *GORMClient) Migrate() error {
	if err := c.db.AutoMigrate(&recordRow{}); err != nil {
		return errors.Wrap(err, "failed to migrate records table")
	}
	return nil
}

func (c *GORMClient) toRecord(row recordRow) (Record, error) {
	rec, err := unmarshalData(row.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt row %s/%s", row.Collection, row.ID)
	}
	rec["id"] = row.ID
	return rec, nil
}

// Create inserts a new row, assigning a UUID when the record has no id.
func (c *GORMClient) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	rec = rec.Clone()
	if rec == nil {
		rec = Record{}
	}
	id, ok := rec.ID()
	if !ok {
		id = uuid.New().String()
	}
	rec["id"] = id
	data, err := marshalData(rec)
	if err != nil {
		return nil, wrap("create", collection, err)
	}
	row := recordRow{Collection: collection, ID: id, Data: data, Seq: time.Now().UnixNano()}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, wrap("create", collection, ErrConflict)
		}
		return nil, wrap("create", collection, err)
	}
	return rec, nil
}

// Update merges partial into an existing row and returns the stored result.
func (c *GORMClient) Update(ctx context.Context, collection, id string, partial Record) (Record, error) {
	var out Record
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recordRow
		if err := tx.First(&row, "collection = ? AND id = ?", collection, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		rec, err := c.toRecord(row)
		if err != nil {
			return err
		}
		for k, v := range partial {
			rec[k] = v
		}
		rec["id"] = id
		if row.Data, err = marshalData(rec); err != nil {
			return err
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, wrap("update", collection, err)
	}
	return out, nil
}

// Upsert inserts rec or replaces the row with the same id.
func (c *GORMClient) Upsert(ctx context.Context, collection string, rec Record) (Record, error) {
	id, ok := rec.ID()
	if !ok {
		return nil, wrap("upsert", collection, errors.New("upsert requires an id"))
	}
	rec = rec.Clone()
	rec["id"] = id
	data, err := marshalData(rec)
	if err != nil {
		return nil, wrap("upsert", collection, err)
	}
	now := time.Now()
	row := recordRow{Collection: collection, ID: id, Data: data, Seq: now.UnixNano(), CreatedAt: now, UpdatedAt: now}
	err = c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, wrap("upsert", collection, err)
	}
	return rec, nil
}

// Delete removes a row by id.
func (c *GORMClient) Delete(ctx context.Context, collection, id string) error {
	res := c.db.WithContext(ctx).Delete(&recordRow{}, "collection = ? AND id = ?", collection, id)
	if res.Error != nil {
		return wrap("delete", collection, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("delete", collection, ErrNotFound)
	}
	return nil
}

// List returns every row of a collection. Collections are small, so
// ordering by a document field happens after the fetch.
func (c *GORMClient) List(ctx context.Context, collection string, opts ListOptions) ([]Record, error) {
	query := c.db.WithContext(ctx).Where("collection = ?", collection).Order("seq ASC").Order("id ASC")
	if opts.OrderBy == "" && opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	var rows []recordRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, wrap("list", collection, err)
	}
	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := c.toRecord(row)
		if err != nil {
			return nil, wrap("list", collection, err)
		}
		recs = append(recs, rec)
	}
	sortRecords(recs, opts.OrderBy)
	return limitRecords(recs, opts.Limit), nil
}

// GetSingleton returns the oldest row of the collection, or nil when empty.
func (c *GORMClient) GetSingleton(ctx context.Context, collection string) (Record, error) {
	var row recordRow
	err := c.db.WithContext(ctx).Where("collection = ?", collection).Order("seq ASC").Limit(1).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrap("get", collection, err)
	}
	rec, err := c.toRecord(row)
	if err != nil {
		return nil, wrap("get", collection, err)
	}
	return rec, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
