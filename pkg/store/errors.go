package store

import "errors"

var (
	errFailedOpenDB  = errors.New("failed to open database")
	errFailedToInit  = errors.New("failed to initialize schema")
	errSaveResult    = errors.New("failed to save result")
	errQueryResults  = errors.New("failed to query results")
	errScanRow       = errors.New("failed to scan row")
)
