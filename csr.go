package tsetlin

import "github.com/hyperifyio/tsetlin/internal/errors"

// csrBatchRows bounds how many CSR rows FitCSR materializes into dense form
// at once: the dataset is trained in mini-batches of this size instead of
// densifying every row up front, which is the whole memory-saving point of
// taking a sparse CSR matrix in the first place (spec section 6).
const csrBatchRows = 512

// denseRowBuffer materializes CSR rows into a reusable dense {0,1} byte
// buffer, so a batch of sparse rows feeds the same training/prediction
// path without allocating a full dense matrix up front.
type denseRowBuffer struct {
	buf []byte
}

func (d *denseRowBuffer) row(indptr, indices []int, values []byte, numColumns, r int) ([]byte, error) {
	if cap(d.buf) < numColumns {
		d.buf = make([]byte, numColumns)
	} else {
		d.buf = d.buf[:numColumns]
	}
	for i := range d.buf {
		d.buf[i] = 0
	}
	start, end := indptr[r], indptr[r+1]
	if start < 0 || end > len(indices) || start > end {
		return nil, errors.New(errors.ValueError, "malformed CSR row %d: indptr range [%d, %d) out of bounds", r, start, end)
	}
	for i := start; i < end; i++ {
		col := indices[i]
		if col < 0 || col >= numColumns {
			return nil, errors.New(errors.ValueError, "CSR column index %d out of range [0, %d)", col, numColumns)
		}
		v := byte(1)
		if values != nil {
			v = values[i]
		}
		d.buf[col] = v
	}
	return d.buf, nil
}

func csrRowCount(indptr []int) (int, error) {
	if len(indptr) < 1 {
		return 0, errors.New(errors.ValueError, "indptr must have at least one element")
	}
	return len(indptr) - 1, nil
}

// FitCSR trains a Classifier from a CSR-encoded (indptr, indices, values)
// feature matrix and dense labels y. Rows are densified csrBatchRows at a
// time into a reusable buffer and fed through PartialFit in mini-batches,
// so the full dataset is never materialized densely at once; the automata
// state is reset first (matching Fit's reset-then-train semantics) and the
// label count, if not already fixed by Options, is inferred from the full
// y slice up front.
func (c *Classifier) FitCSR(indptr, indices []int, values []byte, numColumns int, y []int, epochs int) error {
	rows, err := csrRowCount(indptr)
	if err != nil {
		return err
	}
	if rows != len(y) {
		return errors.New(errors.ValueError, "CSR row count %d does not match len(y) %d", rows, len(y))
	}
	c.mu.Lock()
	if c.initialized {
		c.state.Init(c.irng)
		c.mu.Unlock()
	} else {
		err := c.ensureInitialized([][]byte{make([]byte, numColumns)}, y)
		c.mu.Unlock()
		if err != nil {
			return err
		}
	}

	var buf denseRowBuffer
	batch := make([][]byte, 0, csrBatchRows)
	for epoch := 0; epoch < epochs; epoch++ {
		for start := 0; start < rows; start += csrBatchRows {
			end := start + csrBatchRows
			if end > rows {
				end = rows
			}
			batch = batch[:0]
			for r := start; r < end; r++ {
				dense, err := buf.row(indptr, indices, values, numColumns, r)
				if err != nil {
					return err
				}
				batch = append(batch, append([]byte(nil), dense...))
			}
			if err := c.PartialFit(batch, y[start:end], 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// PredictCSR predicts labels for every row of a CSR-encoded feature
// matrix.
func (c *Classifier) PredictCSR(indptr, indices []int, values []byte, numColumns int) ([]int, error) {
	rows, err := csrRowCount(indptr)
	if err != nil {
		return nil, err
	}
	var buf denseRowBuffer
	preds := make([]int, rows)
	for r := 0; r < rows; r++ {
		dense, err := buf.row(indptr, indices, values, numColumns, r)
		if err != nil {
			return nil, err
		}
		pred, err := c.Predict(dense)
		if err != nil {
			return nil, err
		}
		preds[r] = pred
	}
	return preds, nil
}

// FitCSR trains a Regressor from a CSR-encoded feature matrix and
// continuous targets y, densifying and training in the same csrBatchRows
// mini-batches as Classifier.FitCSR instead of materializing the whole
// dataset densely at once.
func (rgr *Regressor) FitCSR(indptr, indices []int, values []byte, numColumns int, y []int32, epochs int) error {
	rows, err := csrRowCount(indptr)
	if err != nil {
		return err
	}
	if rows != len(y) {
		return errors.New(errors.ValueError, "CSR row count %d does not match len(y) %d", rows, len(y))
	}
	rgr.mu.Lock()
	if rgr.initialized {
		rgr.state.Init(rgr.irng)
		rgr.mu.Unlock()
	} else {
		err := rgr.ensureInitialized([][]byte{make([]byte, numColumns)})
		rgr.mu.Unlock()
		if err != nil {
			return err
		}
	}

	var buf denseRowBuffer
	batch := make([][]byte, 0, csrBatchRows)
	for epoch := 0; epoch < epochs; epoch++ {
		for start := 0; start < rows; start += csrBatchRows {
			end := start + csrBatchRows
			if end > rows {
				end = rows
			}
			batch = batch[:0]
			for r := start; r < end; r++ {
				dense, err := buf.row(indptr, indices, values, numColumns, r)
				if err != nil {
					return err
				}
				batch = append(batch, append([]byte(nil), dense...))
			}
			if err := rgr.PartialFit(batch, y[start:end], 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// PredictCSR predicts continuous targets for every row of a CSR-encoded
// feature matrix.
func (rgr *Regressor) PredictCSR(indptr, indices []int, values []byte, numColumns int) ([]int64, error) {
	rows, err := csrRowCount(indptr)
	if err != nil {
		return nil, err
	}
	var buf denseRowBuffer
	preds := make([]int64, rows)
	for r := 0; r < rows; r++ {
		dense, err := buf.row(indptr, indices, values, numColumns, r)
		if err != nil {
			return nil, err
		}
		pred, err := rgr.Predict(dense)
		if err != nil {
			return nil, err
		}
		preds[r] = pred
	}
	return preds, nil
}
