// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for a single sampled signal and the
// Dataset type for paired input/output records (t, u, y) of a single-input
// single-output system, along with CSV loading and saving.
//
// # Creating a Dataset
//
// Build a dataset from columns:
//
//	d, err := timeseries.NewDataset(t, u, y)
//
//	// A nil time axis is replaced by the sample index
//	d, err := timeseries.NewDataset(nil, u, y)
//
// # Loading from CSV
//
// The default layout is a header row with columns t, u and y:
//
//	d, err := timeseries.LoadCSV("data.csv", nil)
//
// Rename columns through CSVOptions:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.InputColumn = "valve"
//	opts.OutputColumn = "flow"
//	d, err := timeseries.LoadCSVFromReader(reader, opts)
//
// Rows with missing values are rejected rather than skipped, since dropping a
// row would shift every lag that spans it.
//
// # Basic Statistics
//
// Each channel is available as a Series:
//
//	y := d.Output()
//	mean := y.Mean()
//	std := y.Std()
//
// # Estimation and Validation Splits
//
//	est, val := d.Split(0.7)
//
// # Saving Predictions
//
//	err := timeseries.SavePredictionsCSV(w, d, prediction)
//
// Indices without a prediction are written as empty cells.
package timeseries
