package http

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

// HeaderIdempotencyKey cabecera opcional para reintentos seguros de POST.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 255

// IdempotencyStore contrato mínimo del almacén de claves (lo implementa infrastructure/redis).
// Get devuelve "" cuando la clave no existe.
type IdempotencyStore interface {
	Key(scope, id string) string
	Get(ctx context.Context, key string) (string, error)
	Reserve(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Save(ctx context.Context, key, value string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type idempotencyRecord struct {
	Pending     bool   `json:"pending,omitempty"`
	Status      int    `json:"status,omitempty"`
	Body        string `json:"body,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	RequestHash string `json:"request_hash"`
}

// Idempotency reserva la clave antes de ejecutar el handler y guarda la respuesta al terminar.
//   - misma clave y mismo cuerpo → se repite la respuesta guardada (cabecera Idempotent-Replay).
//   - misma clave y otro cuerpo  → 409 IDEMPOTENCY_KEY_REUSED.
//   - clave aún en curso         → 409 IDEMPOTENCY_IN_PROGRESS.
//
// Respuestas 5xx liberan la clave para permitir el reintento. Sin store o sin cabecera no hace nada;
// si Redis falla se registra y la petición sigue sin protección.
func Idempotency(store IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	log = log.Component("idempotency")
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if store == nil || id == "" {
			return c.Next()
		}
		if len(id) > maxIdempotencyKeyLen {
			return badRequest(c, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key demasiado larga")
		}

		ctx := c.UserContext()
		hash := hashBody(c.Body())
		key := store.Key(strings.Join([]string{GetUserID(c), c.Method(), c.Path()}, "|"), id)

		pending, _ := json.Marshal(idempotencyRecord{Pending: true, RequestHash: hash})
		reserved, err := store.Reserve(ctx, key, string(pending), ttl)
		if err != nil {
			log.Warn().Err(err).Str("key", id).Msg("reservar clave de idempotencia")
			return c.Next()
		}

		if !reserved {
			stored, err := store.Get(ctx, key)
			if err != nil {
				log.Warn().Err(err).Str("key", id).Msg("leer clave de idempotencia")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo verificar la clave de idempotencia",
				})
			}
			var rec idempotencyRecord
			if stored != "" {
				if err := json.Unmarshal([]byte(stored), &rec); err != nil {
					log.Warn().Err(err).Str("key", id).Msg("registro de idempotencia corrupto")
					return c.Next()
				}
				if rec.RequestHash != hash {
					return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
						Code: "IDEMPOTENCY_KEY_REUSED", Message: "la clave de idempotencia ya se usó con otro cuerpo",
					})
				}
				if rec.Pending {
					return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
						Code: "IDEMPOTENCY_IN_PROGRESS", Message: "la petición original aún se está procesando",
					})
				}
				return replay(c, rec)
			}
			// expiró entre Reserve y Get: se atiende como nueva sin guardar.
			return c.Next()
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, key)
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			if err := store.Release(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", id).Msg("liberar clave de idempotencia")
			}
			return nil
		}

		rec := idempotencyRecord{
			Status:      status,
			Body:        base64.StdEncoding.EncodeToString(c.Response().Body()),
			ContentType: string(c.Response().Header.ContentType()),
			RequestHash: hash,
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			log.Warn().Err(err).Msg("serializar respuesta idempotente")
			return nil
		}
		if err := store.Save(ctx, key, string(payload), ttl); err != nil {
			log.Warn().Err(err).Str("key", id).Msg("guardar respuesta idempotente")
		}
		return nil
	}
}

func replay(c *fiber.Ctx, rec idempotencyRecord) error {
	body, err := base64.StdEncoding.DecodeString(rec.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "respuesta guardada ilegible"})
	}
	if rec.ContentType != "" {
		c.Set(fiber.HeaderContentType, rec.ContentType)
	}
	c.Set("Idempotent-Replay", "true")
	return c.Status(rec.Status).Send(body)
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}
