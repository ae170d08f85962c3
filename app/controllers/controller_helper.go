package controllers

import (
	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 10
const maxPageSize = 100

// parsePagination reads the uniform page/limit query params. Absent or
// non-numeric values fall back to page 1 and limit 10; limit is capped.
func parsePagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

// paginatedResponse is the uniform list envelope.
func paginatedResponse(items interface{}, total int64, page, limit int) fiber.Map {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return fiber.Map{
		"items":      items,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
	}
}

// imageURL builds the public URL for a stored image file.
func imageURL(c *fiber.Ctx, fileName string) string {
	if fileName == "" {
		return ""
	}
	return c.BaseURL() + "/uploads/" + fileName
}

// avatarURL builds the public URL for a stored avatar file, or "" when the
// user has none.
func avatarURL(c *fiber.Ctx, fileName string) string {
	if fileName == "" {
		return ""
	}
	return c.BaseURL() + "/uploads/avatars/" + fileName
}
