// boundary-import loads a chamber's GeoJSON boundary file into the
// districtlens.boundary_snapshots table so the server can serve boundaries
// from Postgres (BOUNDARY_SOURCE=db) instead of a static CDN.
//
// Usage:
//
//	go run ./cmd/boundary-import -file house.geojson -chamber house -state IN -source census_tiger_2024
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DistrictLens/DL-Backend/internal/boundaries"
	dbpkg "github.com/DistrictLens/DL-Backend/internal/db"
)

func main() {
	_ = godotenv.Load(".env.local")

	file := flag.String("file", "", "path to the GeoJSON boundary file")
	chamber := flag.String("chamber", "", "chamber: house or senate")
	state := flag.String("state", "", "2-letter state abbreviation")
	source := flag.String("source", "census_tiger_2024", "source label stored with the snapshot")
	flag.Parse()

	if *file == "" || (*chamber != "house" && *chamber != "senate") {
		flag.Usage()
		os.Exit(2)
	}

	propertyKey := "SLDLST"
	if *chamber == "senate" {
		propertyKey = "SLDUST"
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Reading %s: %v", *file, err)
	}

	// Parse first: a snapshot the server can't parse is worse than no snapshot.
	col, err := boundaries.ParseCollection(boundaries.Chamber(*chamber), propertyKey, data)
	if err != nil {
		log.Fatalf("Parsing boundary file: %v", err)
	}
	if len(col.Districts) == 0 {
		log.Fatalf("No usable districts found in %s (property %s)", *file, propertyKey)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}

	if err := dbpkg.EnsureSchema(db, "districtlens"); err != nil {
		log.Fatalf("Ensuring schema: %v", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatalf("Enabling uuid-ossp: %v", err)
	}
	if err := db.AutoMigrate(&boundaries.BoundarySnapshot{}); err != nil {
		log.Fatalf("Migrating boundary_snapshots: %v", err)
	}

	ids := make([]string, 0, len(col.Districts))
	for _, d := range col.Districts {
		ids = append(ids, fmt.Sprintf("%03d", d.Number))
	}

	snap := boundaries.BoundarySnapshot{
		ID:          uuid.New(),
		Chamber:     *chamber,
		State:       *state,
		DistrictIDs: ids,
		GeoJSON:     string(data),
		Source:      *source,
		ImportedAt:  time.Now(),
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chamber"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "district_ids", "geo_json", "source", "imported_at"}),
	}).Create(&snap).Error
	if err != nil {
		log.Fatalf("Upserting snapshot: %v", err)
	}

	// TIGER NAMELSAD values are sometimes shouty; normalize for the report.
	title := cases.Title(language.AmericanEnglish)
	fmt.Printf("Imported %d %s districts from %s:\n", len(col.Districts), *chamber, *file)
	for _, d := range col.Districts {
		name := d.Name
		if name != "" {
			name = title.String(name)
		}
		fmt.Printf("  %3d  %s\n", d.Number, name)
	}
}
