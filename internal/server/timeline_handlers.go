package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTimeline handles GET /api/timeline. The feed is assembled on demand
// from the posts of every account the caller follows, newest first.
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	page := parsePagination(c)

	posts, err := s.timelineService.GetTimeline(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
