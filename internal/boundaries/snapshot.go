package boundaries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// BoundarySnapshot is one chamber's boundary file as imported into Postgres
// by cmd/boundary-import. Deployments that prefer serving boundaries from the
// database instead of a static CDN point the store at a DBFetcher.
type BoundarySnapshot struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Chamber     string         `gorm:"uniqueIndex;size:10" json:"chamber"`
	State       string         `gorm:"index;size:2" json:"state"`
	DistrictIDs pq.StringArray `gorm:"type:text[]" json:"district_ids"` // zero-padded, as found in the source
	GeoJSON     string         `gorm:"type:jsonb" json:"-"`
	Source      string         `json:"source"` // e.g. "census_tiger_2024"
	ImportedAt  time.Time      `json:"imported_at"`
}

func (BoundarySnapshot) TableName() string {
	return "districtlens.boundary_snapshots"
}

// DBFetcher serves boundary documents from the snapshot table. The store's
// per-chamber source "URL" is just the chamber tag in this mode.
type DBFetcher struct {
	db *gorm.DB
}

func NewDBFetcher(db *gorm.DB) *DBFetcher {
	return &DBFetcher{db: db}
}

func (f *DBFetcher) Fetch(ctx context.Context, chamber string) ([]byte, error) {
	var snap BoundarySnapshot
	err := f.db.WithContext(ctx).Where("chamber = ?", chamber).First(&snap).Error
	if err != nil {
		return nil, fmt.Errorf("loading %s boundary snapshot: %w", chamber, err)
	}
	return []byte(snap.GeoJSON), nil
}
