// Package report defines the four restaurant reports and runs them over an
// open database connection.
//
// The reports always run in the same order, one statement at a time:
//
//  1. Nearby: restaurants within 2.0 miles, closest first.
//  2. TopRated: the three best rated restaurants.
//  3. CostWithTax: average cost next to the cost with 7.5% tax.
//  4. CuisineCounts: number of restaurants per cuisine.
//
// Filtering, ranking, the tax computation and the aggregation all happen in
// SQL. This package only scans and prints the results.
package report
