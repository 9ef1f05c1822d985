package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/volcanolab/volcanoml/ensemble"
	"github.com/volcanolab/volcanoml/metrics"
)

// WriteSummaryTable renders the aggregate metric table.
func WriteSummaryTable(w io.Writer, summaries []MetricSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "metric\tmean\tstd_err\tn")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%d\n", s.Name, s.Mean, s.StdErr, s.N)
	}
	return tw.Flush()
}

// WriteConfusionTable renders the pooled confusion matrix with true
// classes as rows and predicted classes as columns.
func WriteConfusionTable(w io.Writer, cm *metrics.ConfusionMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "true \\ predicted")
	for _, label := range cm.Labels {
		fmt.Fprintf(tw, "\t%s", label)
	}
	fmt.Fprintln(tw)

	for i, label := range cm.Labels {
		fmt.Fprint(tw, label)
		for j := range cm.Labels {
			fmt.Fprintf(tw, "\t%d", cm.At(i, j))
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "total\t%d\n", cm.Total())
	return tw.Flush()
}

// WritePrecisionTable renders per-resample per-class precision.
func WritePrecisionTable(w io.Writer, rows []PrecisionRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "resample\tclass\tprecision")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\n", r.ResampleID, r.Class, r.Precision)
	}
	return tw.Flush()
}

// WriteImportanceTable renders the permutation-importance ranking.
func WriteImportanceTable(w io.Writer, imps []ensemble.Importance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "rank\tfeature\timportance")
	for i, imp := range imps {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\n", i+1, imp.Feature, imp.Score)
	}
	return tw.Flush()
}
