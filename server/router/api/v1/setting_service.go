package v1

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/notetutor/notetutor/store"
)

type tutorSettingPayload struct {
	Language    string  `json:"language"`
	Depth       string  `json:"depth"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

func (s *APIV1Service) getTutorSetting(c *echo.Context) error {
	setting, err := s.Store.GetTutorSetting(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tutorSettingPayload{
		Language:    setting.Language,
		Depth:       string(setting.Depth),
		Model:       setting.Model,
		Temperature: setting.Temperature,
		MaxTokens:   setting.MaxTokens,
	})
}

// updateTutorSetting overwrites the settings record wholesale. Range
// validation happens here at the API boundary; the store accepts whatever
// it is given.
func (s *APIV1Service) updateTutorSetting(c *echo.Context) error {
	var req tutorSettingPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid settings payload")
	}
	if req.Temperature < 0.0 || req.Temperature > 1.0 {
		return echo.NewHTTPError(http.StatusBadRequest, "temperature must be between 0.0 and 1.0")
	}
	if req.MaxTokens <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "maxTokens must be positive")
	}
	switch store.Depth(req.Depth) {
	case store.DepthShort, store.DepthMedium, store.DepthDetailed:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "depth must be short, medium or detailed")
	}

	setting := &store.TutorSetting{
		Language:    req.Language,
		Depth:       store.Depth(req.Depth),
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if setting.Language == "" {
		setting.Language = store.DefaultTutorSetting().Language
	}
	if setting.Model == "" {
		setting.Model = s.Profile.Model
	}
	if err := s.Store.UpsertTutorSetting(c.Request().Context(), setting); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// Echo back the record that was actually persisted so defaulted fields
	// are visible to the client.
	return c.JSON(http.StatusOK, tutorSettingPayload{
		Language:    setting.Language,
		Depth:       string(setting.Depth),
		Model:       setting.Model,
		Temperature: setting.Temperature,
		MaxTokens:   setting.MaxTokens,
	})
}
