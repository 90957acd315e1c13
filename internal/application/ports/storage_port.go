package ports

import "context"

// ImageStorage define el puerto de salida hacia la plataforma externa de imágenes.
// Cualquier adaptador (servicio de subida HTTP, bucket, mock) debe implementar esta interfaz.
// La aplicación solo conoce el contrato upload(bytes) -> url.
type ImageStorage interface {
	// Upload sube la imagen a la carpeta indicada y devuelve su URL pública.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Upload(ctx context.Context, folder, filename string, data []byte) (string, error)
}

// QRGenerator genera la imagen PNG de un código QR con el contenido dado.
type QRGenerator interface {
	PNG(content string, size int) ([]byte, error)
}
