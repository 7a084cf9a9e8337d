// Package views derives everything the dashboard renders from a repository
// list: KPI totals, the language breakdown, sort orders, name filtering,
// pagination and relative ages. Every function is pure; inputs are never
// modified.
package views
