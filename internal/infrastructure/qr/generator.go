// Package qr genera códigos QR en PNG con boombuler/barcode.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"

	"github.com/jhoicas/inventario-movimientos/internal/application/ports"
)

var _ ports.QRGenerator = (*Generator)(nil)

// Generator implementa ports.QRGenerator.
type Generator struct {
	level bqr.ErrorCorrectionLevel
}

// NewGenerator usa corrección de errores M (15 %), suficiente para etiquetas impresas.
func NewGenerator() *Generator {
	return &Generator{level: bqr.M}
}

// PNG codifica content y lo escala a size×size píxeles.
func (g *Generator) PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: contenido vacío")
	}
	if size <= 0 {
		return nil, fmt.Errorf("qr: tamaño inválido %d", size)
	}
	code, err := bqr.Encode(content, g.level, bqr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qr: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qr: png: %w", err)
	}
	return buf.Bytes(), nil
}
