package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const keplerCSV = `# exported from the NASA Exoplanet Archive
kepid,kepoi_name,kepler_name,koi_disposition,koi_period,koi_prad,koi_steff,koi_depth,koi_model_snr,pl_orbper
10797460,K00752.01,Kepler-227 b,CONFIRMED,9.488036,2.26,5455,615.8,35.8,9.488036
10848459,K00754.01,,FALSE POSITIVE,1.736952,33.46,5805,8079.2,505.6,1.736952
`

func xlsxFile(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParse_CSV(t *testing.T) {
	sheet, err := Parse("koi.csv", strings.NewReader(keplerCSV))
	require.NoError(t, err)
	assert.Equal(t, "kepid", sheet.Headers[0])
	require.Len(t, sheet.Rows, 2)

	first := sheet.Record(0)
	assert.Equal(t, 9.488036, first["koi_period"])
	assert.Equal(t, "Kepler-227 b", first["kepler_name"])
	assert.Equal(t, "CONFIRMED", first["koi_disposition"])

	second := sheet.Record(1)
	assert.False(t, second.Has("kepler_name"), "blank cells are omitted")
	assert.Equal(t, "K00754.01", second.Name())
}

func TestParse_NormalizesHeaders(t *testing.T) {
	sheet, err := Parse("x.CSV", strings.NewReader("\ufeff pl_rade ,,st_teff\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"pl_rade", "Column_2", "st_teff"}, sheet.Headers)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("data.txt", strings.NewReader("a,b"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("header-only.csv", strings.NewReader("koi_prad,koi_period\n,\n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("legacy.xls", strings.NewReader("\xd0\xcf\x11\xe0"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("broken.xlsx", strings.NewReader("not a zip"))
	assert.ErrorContains(t, err, "Excel error")
}

func TestParse_Excel(t *testing.T) {
	buf := xlsxFile(t,
		[]interface{}{"kepoi_name", "koi_prad", "koi_period", "koi_steff", "koi_depth", "koi_model_snr"},
		[]interface{}{"K00752.01", 2.26, 9.488036, 5455, 615.8, 35.8},
	)

	c, err := LoadSingle("upload.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, "K00752.01", c.Name())
	assert.Equal(t, 2.26, c.Number("koi_prad"))
	assert.Equal(t, 5455.0, c.Number("koi_steff"))
}

func TestLoadSingle_MissingRequiredColumn(t *testing.T) {
	input := "koi_prad,koi_period,koi_steff,koi_depth\n2.26,9.48,5455,615.8\n"

	c, err := LoadSingle("koi.csv", strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, c)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "koi_model_snr", missing.Column)
	assert.Contains(t, err.Error(), "koi_model_snr")
}

func TestRecord_NonFiniteCellsStayStrings(t *testing.T) {
	input := "koi_prad,koi_period,koi_steff,koi_depth,koi_model_snr,koi_score,koi_teq\n" +
		"2.26,9.48,5455,615.8,35.8,NaN,Inf\n"

	c, err := LoadSingle("koi.csv", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "NaN", c["koi_score"])
	assert.Equal(t, "Inf", c["koi_teq"])
	assert.Equal(t, 2.26, c["koi_prad"])

	for _, cell := range []string{"nan", "-Inf", "+Infinity"} {
		sheet, err := Parse("x.csv", strings.NewReader("koi_score\n"+cell+"\n"))
		require.NoError(t, err)
		assert.Equal(t, cell, sheet.Record(0)["koi_score"], cell)
	}
}

func TestParse_DuplicateHeaders(t *testing.T) {
	sheet, err := Parse("dup.csv", strings.NewReader("koi_period,koi_prad,koi_period\n9.48,2.26,1.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"koi_period", "koi_prad", "koi_period_2"}, sheet.Headers)

	c := sheet.Record(0)
	assert.Equal(t, 9.48, c["koi_period"], "the first column keeps its name")
	assert.Equal(t, 1.5, c["koi_period_2"])
}

func TestLoadSingle_UsesFirstRow(t *testing.T) {
	c, err := LoadSingle("koi.csv", strings.NewReader(keplerCSV))
	require.NoError(t, err)
	assert.Equal(t, "Kepler-227 b", c.Name())
}

func TestLoadAll(t *testing.T) {
	rows, err := LoadAll("any.csv", strings.NewReader("pl_orbper,st_teff\n3.5,\n,5700\n4.1,6000\n"), 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 3.5, rows[0].Payload().PlOrbper)
	assert.Zero(t, rows[0].Payload().StTeff)
	assert.Zero(t, rows[1].Payload().PlOrbper)

	_, err = LoadAll("any.csv", strings.NewReader("pl_orbper\n1\n2\n3\n"), 2)
	var tooMany *TooManyRowsError
	require.True(t, errors.As(err, &tooMany))
	assert.Equal(t, 3, tooMany.Rows)
}
