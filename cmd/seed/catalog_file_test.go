package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

func TestReadCatalogFile(t *testing.T) {
	in := strings.NewReader("# tipo;nombre;detalle\nunit_measure;Kilogramo;kg\nbrand; Acme ;Proveedor principal\n\nstatus_type;Activo\n")

	rows, err := readCatalogFile(in, false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, entity.CatalogUnitMeasure, rows[0].Kind)
	assert.Equal(t, "kg", rows[0].Item.Symbol)
	assert.Equal(t, entity.CatalogBrand, rows[1].Kind)
	assert.Equal(t, "Proveedor principal", rows[1].Item.Description)
	assert.Equal(t, "Activo", rows[2].Item.Name)
}

func TestReadCatalogFile_Latin1(t *testing.T) {
	// "Categoría" en ISO-8859-1: í = 0xED
	raw := append([]byte("category;Papeler"), 0xED, 'a')
	raw = append(raw, []byte(";\n")...)

	rows, err := readCatalogFile(bytes.NewReader(raw), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Papelería", rows[0].Item.Name)
}

func TestReadCatalogFile_UnknownKind(t *testing.T) {
	_, err := readCatalogFile(strings.NewReader("warehouse;Bodega 1\n"), false)
	assert.Error(t, err)
}
