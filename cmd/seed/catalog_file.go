package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// catalogRow fila de un archivo de catálogos: tipo;nombre;detalle.
type catalogRow struct {
	Kind entity.CatalogKind
	Item dto.CatalogItemRequest
}

// readCatalogFile lee filas "tipo;nombre;detalle" (detalle = nomenclatura en unidades, descripción en el resto).
// Las exportaciones de hoja de cálculo suelen venir en ISO-8859-1; latin1 las decodifica a UTF-8.
// Líneas vacías o que empiezan con '#' se ignoran.
func readCatalogFile(r io.Reader, latin1 bool) ([]catalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("registro %d: %w", n, err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("registro %d: se esperan al menos tipo;nombre", n)
		}
		kind := entity.CatalogKind(strings.ToLower(strings.TrimSpace(rec[0])))
		if !kind.Valid() {
			return nil, fmt.Errorf("registro %d: tipo de catálogo %q desconocido", n, rec[0])
		}
		row := catalogRow{Kind: kind, Item: dto.CatalogItemRequest{Name: rec[1]}}
		if len(rec) > 2 {
			if kind == entity.CatalogUnitMeasure {
				row.Item.Symbol = rec[2]
			} else {
				row.Item.Description = rec[2]
			}
		}
		rows = append(rows, row)
	}
}
