// Package dataset provides the table model, source loaders, and schema
// normalization for the retail report engine.
//
// The package is organized into three main components:
//
// 1. Table/Cell: an immutable tabular record set over a named column schema,
// with cells stored as a tagged variant (string, number, time, missing)
//
// 2. Source: loaders for the customers, inventory and sales tables from CSV
// files or an embedded SQLite database, degrading to an empty table when a
// source file is absent
//
// 3. Normalize: the single normalization pass that trims column-name
// whitespace and coerces the schema's date and numeric columns with
// error-tolerant fallbacks
//
// Basic usage:
//
//	loader := dataset.NewLoader(
//	    dataset.NewCSVSource("customers", "data/CUSTOMERS.csv"),
//	    dataset.NewCSVSource("inventory", "data/INVENTORY.csv"),
//	    dataset.NewCSVSource("sales", "data/SALES.csv"),
//	    logger)
//	snap, err := loader.Load(ctx)
//
// Snapshots are cached against source file signatures and are read-only;
// all downstream aggregation consumes them without further locking.
package dataset
