package routes

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/avsc-hub/avsc-hub/internal/format"
	"github.com/avsc-hub/avsc-hub/internal/naming"
	"github.com/avsc-hub/avsc-hub/internal/schema"
	"github.com/avsc-hub/avsc-hub/internal/server"
	"github.com/avsc-hub/avsc-hub/internal/store"
)

// StoreInfo 描述当前 store 的静态配置，供诊断接口输出。
type StoreInfo struct {
	Root      string
	Format    string
	Extension string
}

// RegisterSchemaRoutes 暴露 /-/schemas 诊断接口，供运维查询缓存内容与单个 schema 的解析结果。
func RegisterSchemaRoutes(app *fiber.App, st *server.SerializedStore, info StoreInfo) {
	if app == nil || st == nil {
		return
	}

	app.Get("/-/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/-/formats", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"formats": encodeFormats(format.List())})
	})

	app.Get("/-/schemas", func(c fiber.Ctx) error {
		names := st.Names()
		return c.JSON(fiber.Map{
			"root":      info.Root,
			"format":    info.Format,
			"extension": info.Extension,
			"count":     len(names),
			"schemas":   names,
		})
	})

	app.Get("/-/schemas/:name", func(c fiber.Ctx) error {
		name := strings.TrimSpace(c.Params("name"))
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "schema_name_required"})
		}
		namespace := strings.TrimSpace(c.Query("namespace"))

		found, err := st.Find(name, namespace)
		if err != nil {
			status, body := encodeFindError(err)
			return c.Status(status).JSON(body)
		}
		return c.JSON(encodeSchema(name, namespace, found))
	})
}

type schemaPayload struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	HasFields bool            `json:"has_fields"`
	Schema    json.RawMessage `json:"schema"`
}

type formatPayload struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
}

func encodeSchema(name, namespace string, s schema.Schema) schemaPayload {
	fullname, named := schema.FullNameOf(s)
	if !named {
		fullname = naming.FullName(name, namespace)
	}
	return schemaPayload{
		Name:      fullname,
		Type:      string(s.Type()),
		HasFields: schema.HasFields(s),
		Schema:    json.RawMessage(s.String()),
	}
}

func encodeFindError(err error) (int, fiber.Map) {
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound, fiber.Map{
			"error": "schema_not_found",
			"name":  notFound.Name,
			"path":  notFound.Path,
		}
	}
	var mismatch *store.MismatchError
	if errors.As(err, &mismatch) {
		return fiber.StatusUnprocessableEntity, fiber.Map{
			"error":    "definition_mismatch",
			"expected": mismatch.Expected,
			"actual":   mismatch.Actual,
			"path":     mismatch.Path,
		}
	}
	if errors.Is(err, store.ErrUnresolvable) {
		return fiber.StatusUnprocessableEntity, fiber.Map{
			"error":   "unresolvable_reference",
			"message": err.Error(),
		}
	}
	return fiber.StatusInternalServerError, fiber.Map{
		"error":   "parse_failed",
		"message": err.Error(),
	}
}

func encodeFormats(metas []format.Metadata) []formatPayload {
	if len(metas) == 0 {
		return nil
	}
	result := make([]formatPayload, 0, len(metas))
	for _, meta := range metas {
		result = append(result, formatPayload{
			Key:         meta.Key,
			Description: meta.Description,
			Extension:   meta.Extension,
		})
	}
	return result
}
