package report

import (
	"database/sql"
	"fmt"
	"strconv"
)

// ID identifies one of the fixed reports.
type ID string

// Report identifiers in execution order.
const (
	Nearby        ID = "nearby"
	TopRated      ID = "top_rated"
	CostWithTax   ID = "cost_with_tax"
	CuisineCounts ID = "cuisine_counts"
)

// Report is one canned query and the way its rows are read.
type Report struct {
	ID      ID
	Title   string
	SQL     string
	Headers []string

	scan func(*sql.Rows) (Row, error)
}

// Row is a single materialized result row.
type Row interface {
	// Line formats the row for the plain text output. rank is the 1-based
	// position of the row within its report.
	Line(rank int) string
	// Cells returns the row values in Headers order.
	Cells(rank int) []string
}

// Result is a fully materialized report.
type Result struct {
	Report *Report
	Rows   []Row
}

const (
	nearbySQL = `SELECT name, distance_miles
FROM restaurants
WHERE distance_miles <= 2.0
ORDER BY distance_miles ASC`

	topRatedSQL = `SELECT name, rating
FROM restaurants
ORDER BY rating DESC
LIMIT 3`

	costWithTaxSQL = `SELECT name, avg_cost,
       ROUND(avg_cost * 1.075, 2) AS cost_with_tax
FROM restaurants
ORDER BY avg_cost ASC`

	cuisineCountsSQL = `SELECT cuisine, COUNT(*) AS restaurant_count
FROM restaurants
GROUP BY cuisine
ORDER BY restaurant_count DESC`
)

// All returns the reports in the order they run.
func All() []Report {
	return []Report{
		{
			ID:      Nearby,
			Title:   "QUERY 1: Restaurants within 2.0 miles (ordered by distance)",
			SQL:     nearbySQL,
			Headers: []string{"name", "distance_miles"},
			scan:    scanNearby,
		},
		{
			ID:      TopRated,
			Title:   "QUERY 2: Top 3 restaurants by rating",
			SQL:     topRatedSQL,
			Headers: []string{"#", "name", "rating"},
			scan:    scanRating,
		},
		{
			ID:      CostWithTax,
			Title:   "QUERY 3: Average cost with 7.5% tax",
			SQL:     costWithTaxSQL,
			Headers: []string{"name", "avg_cost", "cost_with_tax"},
			scan:    scanCost,
		},
		{
			ID:      CuisineCounts,
			Title:   "QUERY 4: Restaurant count per cuisine",
			SQL:     cuisineCountsSQL,
			Headers: []string{"cuisine", "restaurant_count"},
			scan:    scanCuisine,
		},
	}
}

// NearbyRow is a row of the proximity report.
type NearbyRow struct {
	Name          NullText            `json:"name"`
	DistanceMiles Numeric `json:"distance_miles"`
}

func (r NearbyRow) Line(int) string {
	return fmt.Sprintf("  %-25s - %s miles", r.Name, formatNumber(r.DistanceMiles))
}

func (r NearbyRow) Cells(int) []string {
	return []string{r.Name.String(), formatNumber(r.DistanceMiles)}
}

func scanNearby(rows *sql.Rows) (Row, error) {
	var r NearbyRow
	err := rows.Scan(&r.Name, &r.DistanceMiles)
	return r, err
}

// RatingRow is a row of the top rating report.
type RatingRow struct {
	Name   NullText            `json:"name"`
	Rating Numeric `json:"rating"`
}

func (r RatingRow) Line(rank int) string {
	return fmt.Sprintf("  %d. %-25s - Rating: %s", rank, r.Name, formatNumber(r.Rating))
}

func (r RatingRow) Cells(rank int) []string {
	return []string{strconv.Itoa(rank), r.Name.String(), formatNumber(r.Rating)}
}

func scanRating(rows *sql.Rows) (Row, error) {
	var r RatingRow
	err := rows.Scan(&r.Name, &r.Rating)
	return r, err
}

// CostRow is a row of the tax-adjusted cost report. WithTax is computed by
// the database.
type CostRow struct {
	Name    NullText            `json:"name"`
	AvgCost Numeric `json:"avg_cost"`
	WithTax Numeric `json:"cost_with_tax"`
}

func (r CostRow) Line(int) string {
	return fmt.Sprintf("  %-25s - $%s → $%s (with tax)", r.Name, formatMoney(r.AvgCost), formatMoney(r.WithTax))
}

func (r CostRow) Cells(int) []string {
	return []string{r.Name.String(), formatMoney(r.AvgCost), formatMoney(r.WithTax)}
}

func scanCost(rows *sql.Rows) (Row, error) {
	var r CostRow
	err := rows.Scan(&r.Name, &r.AvgCost, &r.WithTax)
	return r, err
}

// CuisineRow is a row of the cuisine aggregation report.
type CuisineRow struct {
	Cuisine NullText `json:"cuisine"`
	Count   int64    `json:"restaurant_count"`
}

func (r CuisineRow) Line(int) string {
	return fmt.Sprintf("  %-25s - %d restaurant(s)", r.Cuisine, r.Count)
}

func (r CuisineRow) Cells(int) []string {
	return []string{r.Cuisine.String(), strconv.FormatInt(r.Count, 10)}
}

func scanCuisine(rows *sql.Rows) (Row, error) {
	var r CuisineRow
	err := rows.Scan(&r.Cuisine, &r.Count)
	return r, err
}
