package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/services"
)

var errInvalidBody = errors.New("invalid request body")

// resourceEndpoints serves RESTful CRUD for one owned collection.
type resourceEndpoints[T any, PT services.OwnedRecord[T]] struct {
	handler *Handler
	name    string
	service *services.ResourceService[T, PT]
}

func registerResource[T any, PT services.OwnedRecord[T]](router fiber.Router, handler *Handler, name string, service *services.ResourceService[T, PT]) fiber.Router {
	endpoints := &resourceEndpoints[T, PT]{handler: handler, name: name, service: service}

	group := router.Group("/"+name, handler.AuthRequired)
	group.Get("", endpoints.list)
	group.Post("", endpoints.create)
	group.Get("/:id", endpoints.show)
	group.Put("/:id", endpoints.update)
	group.Patch("/:id", endpoints.update)
	group.Delete("/:id", endpoints.destroy)
	return group
}

func (endpoints *resourceEndpoints[T, PT]) list(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	records, err := endpoints.service.List(c.UserContext(), *user)
	if err != nil {
		return endpoints.handler.respondServiceError(c, err, "failed to list "+endpoints.name)
	}
	return c.JSON(records)
}

func (endpoints *resourceEndpoints[T, PT]) show(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	record, err := endpoints.service.Get(c.UserContext(), *user, id)
	if err != nil {
		return endpoints.handler.respondServiceError(c, err, "failed to load "+endpoints.name)
	}
	return c.JSON(record)
}

func (endpoints *resourceEndpoints[T, PT]) create(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	record := new(T)
	if err := c.BodyParser(record); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := endpoints.service.Create(c.UserContext(), *user, record); err != nil {
		return endpoints.handler.respondServiceError(c, err, "failed to create "+endpoints.name)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (endpoints *resourceEndpoints[T, PT]) update(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	record, err := endpoints.service.Update(c.UserContext(), *user, id, func(record *T) error {
		if err := c.BodyParser(record); err != nil {
			return fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errInvalidBody) {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
		return endpoints.handler.respondServiceError(c, err, "failed to update "+endpoints.name)
	}
	return c.JSON(record)
}

func (endpoints *resourceEndpoints[T, PT]) destroy(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	if err := endpoints.service.Delete(c.UserContext(), *user, id); err != nil {
		return endpoints.handler.respondServiceError(c, err, "failed to delete "+endpoints.name)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
