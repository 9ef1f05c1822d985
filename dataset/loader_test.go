package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

const sampleCSV = `volcano_number,volcano_name,country,primary_volcano_type,latitude,longitude,elevation,tectonic_settings,major_rock_1
283001,Fuji,Japan,Stratovolcano,35.36,138.73,3776,Subduction zone / Continental crust (>25 km),Andesite / Basaltic Andesite
332020,Kilauea,United States,Shield,19.42,-155.29,1222,Intraplate / Oceanic crust (< 15 km),Basalt / Picro-Basalt
211060,Stromboli,Italy,Caldera,38.79,15.21,924,Subduction zone / Continental crust (>25 km),Trachybasalt / Tephrite Basanite
`

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	fuji := table.Records[0]
	assert.Equal(t, 283001, fuji.Number)
	assert.Equal(t, "Fuji", fuji.Name)
	assert.Equal(t, Stratovolcano, fuji.Type)
	assert.InDelta(t, 35.36, fuji.Latitude, 1e-9)
	assert.InDelta(t, 3776.0, fuji.Elevation, 1e-9)

	assert.Equal(t, Shield, table.Records[1].Type)
	assert.Equal(t, Other, table.Records[2].Type)
}

func TestLoadMissingColumn(t *testing.T) {
	// No tectonic_settings column.
	csv := `volcano_number,primary_volcano_type,latitude,longitude,elevation,major_rock_1
283001,Stratovolcano,35.36,138.73,3776,Andesite
`
	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)

	var schemaErr *errors.SchemaMismatchError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "tectonic_settings", schemaErr.Column)
}

func TestLoadBadNumeric(t *testing.T) {
	csv := `volcano_number,primary_volcano_type,latitude,longitude,elevation,tectonic_settings,major_rock_1
283001,Stratovolcano,north,138.73,3776,Subduction zone,Andesite
`
	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)

	var schemaErr *errors.SchemaMismatchError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "latitude", schemaErr.Column)
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader("volcano_number,primary_volcano_type\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestLoadImputesElevation(t *testing.T) {
	csv := `volcano_number,primary_volcano_type,latitude,longitude,elevation,tectonic_settings,major_rock_1
1,Stratovolcano,10,10,1000,Subduction zone,Andesite
2,Stratovolcano,11,11,NA,Subduction zone,Andesite
3,Shield,12,12,3000,Rift zone,Basalt
4,Shield,13,13,,Rift zone,Basalt
5,Caldera,14,14,2000,Rift zone,Basalt
`
	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)

	// Median of {1000, 3000, 2000} is 2000.
	assert.InDelta(t, 2000.0, table.Records[1].Elevation, 1e-9)
	assert.InDelta(t, 2000.0, table.Records[3].Elevation, 1e-9)
	assert.InDelta(t, 1000.0, table.Records[0].Elevation, 1e-9)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	table, err := Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var unavailable *errors.DataUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, srv.URL, unavailable.Source)
}

func TestFetchConnectionRefused(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Fetch(context.Background(), url)
	require.Error(t, err)

	var unavailable *errors.DataUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestFetchSchemaKeepsIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("volcano_number,latitude\n1,2\n"))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	// A schema problem must not be reclassified as unavailable data.
	var schemaErr *errors.SchemaMismatchError
	assert.True(t, errors.As(err, &schemaErr))
	var unavailable *errors.DataUnavailableError
	assert.False(t, errors.As(err, &unavailable))
}
