// Package csvexport serializa tablas a CSV (RFC 4180) en UTF-8 o Latin-1.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
)

var _ analytics.TableEncoder = (*Encoder)(nil)

// utf8BOM hace que Excel detecte UTF-8 al abrir el archivo.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// latin1Fallback sustituye por '?' las runas fuera de ISO-8859-1.
var latin1Fallback = runes.Map(func(r rune) rune {
	if r > 0xFF {
		return '?'
	}
	return r
})

// Encoder implementa analytics.TableEncoder.
type Encoder struct {
	// Comma separador de campos; ',' por defecto.
	Comma rune
}

// NewEncoder construye el encoder con separador ','.
func NewEncoder() *Encoder { return &Encoder{Comma: ','} }

// Encode escribe encabezados y filas. Comillas, separadores y saltos de línea se escapan.
// Con encoding latin1 los caracteres fuera de ISO-8859-1 se reemplazan por '?'.
func (e *Encoder) Encode(headers []string, rows [][]string, encoding string) ([]byte, error) {
	var buf bytes.Buffer
	if encoding == analytics.EncodingLatin1 {
		tw := transform.NewWriter(&buf, transform.Chain(latin1Fallback, charmap.ISO8859_1.NewEncoder()))
		if err := e.write(tw, headers, rows); err != nil {
			return nil, err
		}
		if err := tw.Close(); err != nil {
			return nil, fmt.Errorf("csv latin1: %w", err)
		}
		return buf.Bytes(), nil
	}

	buf.Write(utf8BOM)
	if err := e.write(&buf, headers, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) write(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if e.Comma != 0 {
		cw.Comma = e.Comma
	}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("csv encabezados: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("csv filas: %w", err)
	}
	return nil
}
