package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/lithammer/shortuuid/v4"

	"github.com/notetutor/notetutor/store"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	UID       string `json:"uid"`
	TopicUID  string `json:"topicUid,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
}

func convertNote(n *store.Note) noteResponse {
	return noteResponse{
		UID:       n.UID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedTs: n.CreatedTs,
		UpdatedTs: n.UpdatedTs,
	}
}

func (s *APIV1Service) listNotes(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	notes, err := s.Store.ListNotes(c.Request().Context(), &store.FindNote{TopicID: &topic.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, convertNote(n))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) createNote(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title required")
	}
	note, err := s.Store.CreateNote(c.Request().Context(), &store.Note{
		UID:     shortuuid.New(),
		TopicID: topic.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	s.indexNote(c, note)
	return c.JSON(http.StatusCreated, convertNote(note))
}

func (s *APIV1Service) getNote(c *echo.Context) error {
	note, err := s.findNote(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convertNote(note))
}

func (s *APIV1Service) updateNote(c *echo.Context) error {
	note, err := s.findNote(c)
	if err != nil {
		return err
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title required")
	}
	updated, err := s.Store.UpdateNote(c.Request().Context(), &store.UpdateNote{
		ID:      note.ID,
		Title:   &req.Title,
		Content: &req.Content,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	s.indexNote(c, updated)
	return c.JSON(http.StatusOK, convertNote(updated))
}

func (s *APIV1Service) deleteNote(c *echo.Context) error {
	note, err := s.findNote(c)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteNote(c.Request().Context(), note.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if s.VectorStore != nil {
		if err := s.VectorStore.RemoveNote(c.Request().Context(), note.TopicID, note.UID); err != nil {
			slog.Warn("failed to drop note from vector index", "note", note.UID, "err", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) findNote(c *echo.Context) (*store.Note, error) {
	uid := c.Param("uid")
	note, err := s.Store.GetNote(c.Request().Context(), &store.FindNote{UID: &uid})
	if err != nil || note == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "note not found")
	}
	return note, nil
}

// indexNote refreshes the semantic index for a note; indexing failures are
// logged, never surfaced.
func (s *APIV1Service) indexNote(c *echo.Context, note *store.Note) {
	if s.VectorStore == nil {
		return
	}
	if err := s.VectorStore.UpsertNote(c.Request().Context(), note.TopicID, note.UID, note.Title, note.Content); err != nil {
		slog.Warn("failed to index note", "note", note.UID, "err", err)
	}
}
