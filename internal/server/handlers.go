package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/fitcoach/internal/app"
	"github.com/mohammad-safakhou/fitcoach/internal/narration"
	"github.com/mohammad-safakhou/fitcoach/models"
)

// Handler exposes the app service over HTTP.
type Handler struct {
	App *app.Service
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/state", h.state)
	g.GET("/options", h.options)

	g.GET("/profile", h.getProfile)
	g.PUT("/profile", h.putProfile)
	g.GET("/preferences/dark-mode", h.getDarkMode)
	g.PUT("/preferences/dark-mode", h.putDarkMode)

	g.GET("/plan", h.getPlan)
	g.POST("/plan", h.generatePlan)
	g.DELETE("/plan", h.clearPlan)
	g.GET("/plan/narration", h.narration)

	g.POST("/audio/play", h.play)
	g.POST("/audio/stop", h.stop)
	g.GET("/audio/state", h.audioState)
	g.GET("/audio/current", h.currentAudio)

	g.POST("/images", h.requestImage)
	g.GET("/images/modal", h.modal)
	g.DELETE("/images/modal", h.closeModal)
}

func (h *Handler) state(c echo.Context) error {
	return c.JSON(http.StatusOK, h.App.Snapshot(c.Request().Context()))
}

func (h *Handler) options(c echo.Context) error {
	return c.JSON(http.StatusOK, models.DefaultProfileOptions())
}

func (h *Handler) getProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, h.App.Profile(c.Request().Context()))
}

func (h *Handler) putProfile(c echo.Context) error {
	var req models.UserProfile
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile")
	}
	saved, err := h.App.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *Handler) getDarkMode(c echo.Context) error {
	return c.JSON(http.StatusOK, DarkModeResponse{DarkMode: h.App.DarkMode(c.Request().Context())})
}

func (h *Handler) putDarkMode(c echo.Context) error {
	var req DarkModeRequest
	if err := c.Bind(&req); err != nil || req.DarkMode == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dark_mode required")
	}
	if err := h.App.SetDarkMode(c.Request().Context(), *req.DarkMode); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, DarkModeResponse{DarkMode: *req.DarkMode})
}

func (h *Handler) getPlan(c echo.Context) error {
	return c.JSON(http.StatusOK, PlanResponse{Plan: h.App.Plan(c.Request().Context())})
}

func (h *Handler) generatePlan(c echo.Context) error {
	plan, err := h.App.GeneratePlan(c.Request().Context())
	switch {
	case errors.Is(err, app.ErrBusy), errors.Is(err, app.ErrSuperseded):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusBadGateway, app.MsgPlanFailed).SetInternal(err)
	}
	return c.JSON(http.StatusOK, PlanResponse{Plan: plan})
}

func (h *Handler) clearPlan(c echo.Context) error {
	if err := h.App.ClearPlan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) narration(c echo.Context) error {
	id, text, err := h.resolveNarration(c, c.QueryParam("tab"), c.QueryParam("day"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NarrationResponse{ID: id, Text: text})
}

// resolveNarration maps tab/day onto the stored plan. An empty day means
// the whole tab.
func (h *Handler) resolveNarration(c echo.Context, tabParam, day string) (string, string, error) {
	tab, err := narration.ParseTab(tabParam)
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	plan := h.App.Plan(c.Request().Context())
	if plan == nil {
		return "", "", echo.NewHTTPError(http.StatusNotFound, "no plan")
	}
	if strings.TrimSpace(day) == "" {
		return narration.FullPlanID, narration.FullPlanText(*plan, tab), nil
	}
	id, text, ok := narration.DayText(*plan, tab, day)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusNotFound, "day not found")
	}
	return id, text, nil
}

func (h *Handler) play(c echo.Context) error {
	var req PlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	id, text := strings.TrimSpace(req.ID), req.Text
	if strings.TrimSpace(text) == "" {
		var err error
		if id, text, err = h.resolveNarration(c, req.Tab, req.Day); err != nil {
			return err
		}
		if req.ID != "" {
			id = req.ID
		}
	}
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id required")
	}
	if err := h.App.PlayAudio(c.Request().Context(), id, text); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, app.MsgAudioFailed).SetInternal(err)
	}
	return c.JSON(http.StatusOK, h.App.AudioState())
}

func (h *Handler) stop(c echo.Context) error {
	h.App.StopAudio()
	return c.JSON(http.StatusOK, h.App.AudioState())
}

func (h *Handler) audioState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.App.AudioState())
}

func (h *Handler) currentAudio(c echo.Context) error {
	clip, ok := h.App.CurrentAudio()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "nothing playing")
	}
	c.Response().Header().Set("X-Audio-Item", clip.ID)
	return c.Blob(http.StatusOK, "audio/wav", clip.WAV)
}

func (h *Handler) requestImage(c echo.Context) error {
	var req ImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	prompt := strings.TrimSpace(req.Prompt)
	title := strings.TrimSpace(req.Title)
	if prompt == "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "prompt or name required")
		}
		switch req.Kind {
		case "exercise":
			prompt = narration.ExercisePhotoPrompt(name)
		case "meal":
			prompt = narration.MealPhotoPrompt(name)
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "kind must be exercise or meal")
		}
		if title == "" {
			title = name
		}
	}
	return c.JSON(http.StatusOK, h.App.RequestImage(c.Request().Context(), title, prompt))
}

func (h *Handler) modal(c echo.Context) error {
	return c.JSON(http.StatusOK, h.App.Modal())
}

func (h *Handler) closeModal(c echo.Context) error {
	h.App.CloseModal()
	return c.JSON(http.StatusOK, h.App.Modal())
}
