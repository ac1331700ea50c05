package h5ad

import "errors"

// Sentinels shared by every reader built on an Accessor. Callers match them
// with errors.Is; the wrapped message carries the dataset path.
var (
	ErrMissingDataset      = errors.New("missing dataset")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrIO                  = errors.New("container read failed")
)
