// check-point resolves a single coordinate against the configured boundary
// files and prints the containing districts. Handy for sanity-checking a new
// boundary deployment without standing up the server.
//
// Usage:
//
//	go run ./cmd/check-point 39.1653 -86.5264
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/DistrictLens/DL-Backend/internal/boundaries"
	"github.com/DistrictLens/DL-Backend/internal/config"
)

func main() {
	_ = godotenv.Load(".env.local")

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: check-point <lat> <lng>")
		os.Exit(2)
	}
	lat, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		log.Fatalf("Invalid lat %q", os.Args[1])
	}
	lng, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		log.Fatalf("Invalid lng %q", os.Args[2])
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Loading chamber config: %v", err)
	}

	house := cfg.Chambers["house"]
	senate := cfg.Chambers["senate"]
	store := boundaries.NewStore(boundaries.NewHTTPFetcher(), map[boundaries.Chamber]boundaries.Source{
		boundaries.ChamberHouse:  {URL: house.BoundaryURL, PropertyKey: house.DistrictProperty},
		boundaries.ChamberSenate: {URL: senate.BoundaryURL, PropertyKey: senate.DistrictProperty},
	})

	result := store.Resolve(context.Background(), lat, lng)

	fmt.Printf("Point (%.5f, %.5f):\n", lat, lng)
	if !result.Success {
		fmt.Printf("  no match: %s\n", result.Error)
		os.Exit(1)
	}
	if result.HouseDistrict != nil {
		fmt.Printf("  house district:  %d\n", *result.HouseDistrict)
	} else {
		fmt.Println("  house district:  none")
	}
	if result.SenateDistrict != nil {
		fmt.Printf("  senate district: %d\n", *result.SenateDistrict)
	} else {
		fmt.Println("  senate district: none")
	}
}
