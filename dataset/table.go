package dataset

import (
	"gonum.org/v1/gonum/mat"
)

// Table is the modeling-ready record set. It keeps whole records so
// predictions can be joined back to coordinates for the geographic
// report.
type Table struct {
	Records []Record
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Records)
}

// Select returns a new Table with the rows at the given indices.
// Indices may repeat, which is how bootstrap training multisets are
// materialized. The result shares Record values but owns its slice.
func (t *Table) Select(indices []int) *Table {
	records := make([]Record, len(indices))
	for i, idx := range indices {
		records[i] = t.Records[idx]
	}
	return &Table{Records: records}
}

// Labels returns the derived class of every row.
func (t *Table) Labels() []Class {
	labels := make([]Class, len(t.Records))
	for i, rec := range t.Records {
		labels[i] = rec.Type
	}
	return labels
}

// LabelMatrix returns the labels as an n×1 matrix of class indices,
// the shape the classifier consumes.
func (t *Table) LabelMatrix() *mat.Dense {
	y := mat.NewDense(len(t.Records), 1, nil)
	for i, rec := range t.Records {
		y.Set(i, 0, float64(rec.Type))
	}
	return y
}

// ClassCounts returns the number of rows per class.
func (t *Table) ClassCounts() map[Class]int {
	counts := make(map[Class]int, NumClasses)
	for _, rec := range t.Records {
		counts[rec.Type]++
	}
	return counts
}
