package gateway

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRow_Map(t *testing.T) {
	audio := []byte{0xff, 0xd8, 0x00, 0x01}
	row := Row{
		columns: []Column{
			{Name: "id_ficha", Type: "INT"},
			{Name: "codigo", Type: "VARCHAR"},
			{Name: "audio", Type: "LONGBLOB"},
			{Name: "url_foto", Type: "BLOB"},
			{Name: "notas", Type: "TEXT"},
			{Name: "latitud", Type: "DECIMAL"},
		},
		values: []any{int64(4), []byte("CH-01"), audio, []byte("http://x/y.jpg"), nil, 1.5},
	}

	got := row.Map()
	assert.Equal(t, int64(4), got["id_ficha"])
	assert.Equal(t, "CH-01", got["codigo"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), got["audio"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("http://x/y.jpg")), got["url_foto"])
	assert.Nil(t, got["notas"])
	assert.Equal(t, 1.5, got["latitud"])
}

func TestRow_InvalidUTF8IsBinary(t *testing.T) {
	row := Row{
		columns: []Column{{Name: "audio", Type: ""}},
		values:  []any{[]byte{0xc3, 0x28}},
	}
	assert.Equal(t, "wyg=", row.Map()["audio"])

	_, ok := row.Text("audio")
	assert.False(t, ok)
}

func TestRow_Accessors(t *testing.T) {
	row := Row{
		columns: []Column{{Name: "url_foto", Type: "BLOB"}, {Name: "tipo_foto", Type: "TEXT"}},
		values:  []any{[]byte("https://drive/x"), "fachada"},
	}

	b, ok := row.Bytes("url_foto")
	assert.True(t, ok)
	assert.Equal(t, []byte("https://drive/x"), b)

	s, ok := row.Text("tipo_foto")
	assert.True(t, ok)
	assert.Equal(t, "fachada", s)

	_, ok = row.Text("url_foto")
	assert.False(t, ok, "declared binary columns are not text")

	_, ok = row.Get("missing")
	assert.False(t, ok)
}

func TestMaps_NeverNil(t *testing.T) {
	got := Maps(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", ErrNotFound, KindNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, KindConflict},
		{"mysql fk", &mysql.MySQLError{Number: 1452}, KindConflict},
		{"mysql data too long", &mysql.MySQLError{Number: 1406}, KindValidation},
		{"mysql null column", &mysql.MySQLError{Number: 1048}, KindValidation},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, KindUnavailable},
		{"mysql signal", &mysql.MySQLError{Number: 1644, Message: "control inexistente"}, KindStore},
		{"mysql bad conn", mysql.ErrInvalidConn, KindUnavailable},
		{"pg unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pg check violation", &pgconn.PgError{Code: "23514"}, KindValidation},
		{"pg invalid text", &pgconn.PgError{Code: "22P02"}, KindValidation},
		{"pg no data", &pgconn.PgError{Code: "P0002"}, KindNotFound},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, KindUnavailable},
		{"pg raise", &pgconn.PgError{Code: "P0001"}, KindStore},
		{"plain", errors.New("boom"), KindStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrap_KeepsMessageAndKind(t *testing.T) {
	assert.Nil(t, wrap("op", nil))

	base := &mysql.MySQLError{Number: 1644, Message: "estado no permitido"}
	err := wrap("control.update", base)
	assert.Equal(t, base.Error(), err.Error())
	assert.ErrorIs(t, err, base)

	assert.Same(t, err, wrap("other", err))
}

func TestRow_MapWithText(t *testing.T) {
	row := Row{
		columns: []Column{{Name: "url_foto", Type: "LONGBLOB"}, {Name: "audio", Type: "LONGBLOB"}},
		values:  []any{[]byte("https://drive.google.com/file/d/f1/view"), []byte{0xff, 0xfe}},
	}

	got := row.MapWithText("url_foto", "audio")
	assert.Equal(t, "https://drive.google.com/file/d/f1/view", got["url_foto"])
	assert.Equal(t, "//4=", got["audio"], "invalid UTF-8 stays base64")
}
