package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/notetutor/notetutor/store"
)

type topicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type topicResponse struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedTs   int64  `json:"createdTs"`
	UpdatedTs   int64  `json:"updatedTs"`
}

func convertTopic(t *store.Topic) topicResponse {
	return topicResponse{
		UID:         t.UID,
		Name:        t.Name,
		Description: t.Description,
		CreatedTs:   t.CreatedTs,
		UpdatedTs:   t.UpdatedTs,
	}
}

func (s *APIV1Service) listTopics(c *echo.Context) error {
	topics, err := s.Store.ListTopics(c.Request().Context(), &store.FindTopic{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]topicResponse, 0, len(topics))
	for _, t := range topics {
		resp = append(resp, convertTopic(t))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) createTopic(c *echo.Context) error {
	var req topicRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name required")
	}
	topic, err := s.Store.CreateTopic(c.Request().Context(), &store.Topic{
		UID:         uuid.New().String()[:8],
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, convertTopic(topic))
}

func (s *APIV1Service) getTopic(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convertTopic(topic))
}

func (s *APIV1Service) updateTopic(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	var req topicRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name required")
	}
	updated, err := s.Store.UpdateTopic(c.Request().Context(), &store.UpdateTopic{
		ID:          topic.ID,
		Name:        &req.Name,
		Description: &req.Description,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, convertTopic(updated))
}

func (s *APIV1Service) deleteTopic(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteTopic(c.Request().Context(), topic.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if s.VectorStore != nil {
		if err := s.VectorStore.DeleteTopic(topic.ID); err != nil {
			slog.Warn("failed to drop topic vector collection", "topic", topic.ID, "err", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// findTopic resolves the :uid route param to a topic or fails with 404.
func (s *APIV1Service) findTopic(c *echo.Context) (*store.Topic, error) {
	uid := c.Param("uid")
	topic, err := s.Store.GetTopic(c.Request().Context(), &store.FindTopic{UID: &uid})
	if err != nil || topic == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "topic not found")
	}
	return topic, nil
}
