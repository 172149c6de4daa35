package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/pkg/errors"

	"github.com/notetutor/notetutor/internal/llm"
	"github.com/notetutor/notetutor/internal/tutor"
	"github.com/notetutor/notetutor/store"
)

type askRequest struct {
	Question string `json:"question"`
	// NoteUID optionally pins the turn to one selected note.
	NoteUID string `json:"noteUid"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type chatMessageResponse struct {
	ID        int32  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"createdTs"`
}

func (s *APIV1Service) listChatMessages(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	msgs, err := s.Store.ListChatMessages(c.Request().Context(), &store.FindChatMessage{TopicID: topic.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]chatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, chatMessageResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedTs: m.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) clearChat(c *echo.Context) error {
	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteChatMessages(c.Request().Context(), topic.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) askTutor(c *echo.Context) error {
	if s.Profile.APIKey == "" {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "tutor is not configured (missing API key)")
	}

	topic, err := s.findTopic(c)
	if err != nil {
		return err
	}

	var req askRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question required")
	}

	ctx := c.Request().Context()

	notes, err := s.Store.ListNotes(ctx, &store.FindNote{TopicID: &topic.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	noteTitles := make([]string, 0, len(notes))
	for _, n := range notes {
		noteTitles = append(noteTitles, n.Title)
	}

	selectedContent := ""
	if req.NoteUID != "" {
		note, err := s.Store.GetNote(ctx, &store.FindNote{UID: &req.NoteUID})
		if err != nil || note == nil || note.TopicID != topic.ID {
			return echo.NewHTTPError(http.StatusNotFound, "note not found")
		}
		selectedContent = note.Content
	}

	// Settings are loaded fresh for every turn, never cached.
	setting, err := s.Store.GetTutorSetting(ctx)
	if err != nil {
		setting = store.DefaultTutorSetting()
	}

	answer, err := s.Tutor.Ask(ctx, &tutor.AskRequest{
		TopicID:             topic.ID,
		TopicName:           topic.Name,
		TopicDescription:    topic.Description,
		NoteTitles:          noteTitles,
		SelectedNoteContent: selectedContent,
		Question:            req.Question,
		Setting:             setting,
	})
	if err != nil {
		switch {
		case errors.Is(err, tutor.ErrEmptyQuestion), errors.Is(err, tutor.ErrNoTopic):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, tutor.ErrNotConfigured):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, llm.ErrTimeout):
			return echo.NewHTTPError(http.StatusGatewayTimeout, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}
	return c.JSON(http.StatusOK, askResponse{Answer: answer})
}
