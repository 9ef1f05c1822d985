package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// DefaultSourceURL is the public volcano table this analysis was built
// around.
const DefaultSourceURL = "https://raw.githubusercontent.com/rfordatascience/tidytuesday/master/data/2020/2020-05-12/volcano.csv"

// Columns the loader requires. The source carries many more (eruption
// evidence, population bands, secondary rocks); everything else is
// ignored.
const (
	colNumber      = "volcano_number"
	colName        = "volcano_name"
	colCountry     = "country"
	colPrimaryType = "primary_volcano_type"
	colLatitude    = "latitude"
	colLongitude   = "longitude"
	colElevation   = "elevation"
	colTectonic    = "tectonic_settings"
	colMajorRock   = "major_rock_1"
)

var requiredColumns = []string{
	colNumber, colPrimaryType, colLatitude, colLongitude,
	colElevation, colTectonic, colMajorRock,
}

// Fetch performs a single HTTP GET against url and parses the body.
// There is no retry and no caching: a transient network failure is
// surfaced as a DataUnavailableError for the caller to handle.
func Fetch(ctx context.Context, url string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewDataUnavailableError(url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.NewDataUnavailableError(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewDataUnavailableError(url, errors.Newf("unexpected status %s", resp.Status))
	}

	table, err := Load(resp.Body)
	if err != nil {
		// Schema problems keep their identity; read failures become
		// DataUnavailable.
		var schemaErr *errors.SchemaMismatchError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, errors.NewDataUnavailableError(url, err)
	}
	return table, nil
}

// Load parses the CSV stream into a Table, validating the schema and
// deriving the target class for every row. Column order is taken from
// the header. A missing required column or a non-numeric value in a
// numeric column is a SchemaMismatchError and aborts the load.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	if len(rows) < 2 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv has no data rows")
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	imputeElevation(records)
	return &Table{Records: records}, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, errors.NewSchemaMismatchError(col, "column missing from header")
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	number, err := strconv.Atoi(field(colNumber))
	if err != nil {
		return Record{}, errors.NewSchemaMismatchError(colNumber, "not an integer: "+field(colNumber))
	}

	lat, err := strconv.ParseFloat(field(colLatitude), 64)
	if err != nil {
		return Record{}, errors.NewSchemaMismatchError(colLatitude, "not a number: "+field(colLatitude))
	}
	lon, err := strconv.ParseFloat(field(colLongitude), 64)
	if err != nil {
		return Record{}, errors.NewSchemaMismatchError(colLongitude, "not a number: "+field(colLongitude))
	}

	// Elevation may be missing; it is imputed with the column median
	// after the full pass.
	elevation := math.NaN()
	if s := field(colElevation); s != "" && s != "NA" {
		elevation, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return Record{}, errors.NewSchemaMismatchError(colElevation, "not a number: "+s)
		}
	}

	primary := field(colPrimaryType)
	return Record{
		Number:          number,
		Name:            field(colName),
		Country:         field(colCountry),
		Latitude:        lat,
		Longitude:       lon,
		Elevation:       elevation,
		TectonicSetting: field(colTectonic),
		MajorRock:       field(colMajorRock),
		PrimaryType:     primary,
		Type:            DeriveClass(primary),
	}, nil
}

// imputeElevation fills missing elevations with the median of the
// observed values.
func imputeElevation(records []Record) {
	observed := make([]float64, 0, len(records))
	for _, rec := range records {
		if !math.IsNaN(rec.Elevation) {
			observed = append(observed, rec.Elevation)
		}
	}
	if len(observed) == 0 {
		return
	}
	sort.Float64s(observed)
	median := observed[len(observed)/2]
	if len(observed)%2 == 0 {
		median = (observed[len(observed)/2-1] + observed[len(observed)/2]) / 2
	}
	for i := range records {
		if math.IsNaN(records[i].Elevation) {
			records[i].Elevation = median
		}
	}
}
