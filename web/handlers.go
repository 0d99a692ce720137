package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/controller"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/db"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

// The JSON shapes below match what the rankings page consumes, which is why
// the field names are snake_case while the model stays idiomatic Go.

type versionJSON struct {
	ID            int32  `json:"id"`
	VersionNumber int32  `json:"version_number"`
	VersionDate   string `json:"version_date"`
	IsCurrent     bool   `json:"is_current"`
	Notes         string `json:"notes,omitempty"`
}

type playerJSON struct {
	ID             int32  `json:"id,omitempty"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	PositionRank   int32  `json:"position_rank"`
	NFLTeam        string `json:"nfl_team"`
	ByeWeek        int    `json:"bye_week,omitempty"`
	IsBold         bool   `json:"is_bold"`
	IsItalic       bool   `json:"is_italic"`
	SmallTierBreak bool   `json:"small_tier_break"`
	BigTierBreak   bool   `json:"big_tier_break"`
	NewsCopy       string `json:"news_copy,omitempty"`
	RankingChange  int32  `json:"ranking_change"`
}

type playersByPositionJSON struct {
	QB []playerJSON `json:"QB"`
	RB []playerJSON `json:"RB"`
	WR []playerJSON `json:"WR"`
	TE []playerJSON `json:"TE"`
}

type boardResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Version *versionJSON          `json:"version"`
	Players playersByPositionJSON `json:"players"`
}

type publishRequest struct {
	Players struct {
		QB []playerInputJSON `json:"QB"`
		RB []playerInputJSON `json:"RB"`
		WR []playerInputJSON `json:"WR"`
		TE []playerInputJSON `json:"TE"`
	} `json:"players"`
	Notes string `json:"notes"`
}

type playerInputJSON struct {
	Name           string `json:"name"`
	NFLTeam        string `json:"nfl_team"`
	ByeWeek        int    `json:"bye_week"`
	IsBold         bool   `json:"is_bold"`
	IsItalic       bool   `json:"is_italic"`
	SmallTierBreak bool   `json:"small_tier_break"`
	BigTierBreak   bool   `json:"big_tier_break"`
	NewsCopy       string `json:"news_copy"`
}

type publishResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Version  *struct {
		ID            int32 `json:"id"`
		VersionNumber int32 `json:"version_number"`
		PlayerCount   int   `json:"player_count"`
	} `json:"version,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "draft rankings API")
	}
}

func playersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := ctrl.GetCurrentRankings(r.Context())
		if err != nil {
			if errors.Is(err, db.ErrNoCurrentVersion) {
				// Degraded but not an error: the site shows an empty board.
				render.JSON(w, http.StatusOK, boardResponse{
					Success: true,
					Message: "no rankings published yet",
					Players: emptyPlayersJSON(),
				})
				return
			}
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}

		render.JSON(w, http.StatusOK, boardToResponse(board))
	}
}

func updateRankingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req publishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(render, w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		set := model.PlayerSet{
			QB: toPlayerInputs(req.Players.QB),
			RB: toPlayerInputs(req.Players.RB),
			WR: toPlayerInputs(req.Players.WR),
			TE: toPlayerInputs(req.Players.TE),
		}

		result, err := ctrl.PublishVersion(r.Context(), set, req.Notes)
		if err != nil {
			renderPublishError(render, w, err)
			return
		}

		renderPublishResult(render, w, result)
	}
}

func uploadCSVHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse the multipart form. 5 << 20 specifies a maximum upload of 5 MB files.
		r.ParseMultipartForm(5 << 20)

		file, handler, err := r.FormFile("rankings-file")
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		defer file.Close()

		if handler.Header.Get("Content-Type") != "text/csv" {
			msg := fmt.Sprintf("Only CSV files are supported. Got %s", handler.Header.Get("Content-Type"))
			renderError(render, w, http.StatusBadRequest, msg)
			return
		}

		result, err := ctrl.ImportRankingsCSV(r.Context(), file, r.FormValue("notes"))
		if err != nil {
			renderPublishError(render, w, err)
			return
		}

		renderPublishResult(render, w, result)
	}
}

func versionsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		versions, err := ctrl.ListVersions(r.Context())
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}

		results := make([]versionJSON, 0, len(versions))
		for i := range versions {
			results = append(results, versionToJSON(&versions[i]))
		}
		render.JSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"versions": results,
		})
	}
}

func versionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := versionID(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		board, err := ctrl.GetVersion(r.Context(), id)
		if err != nil {
			if errors.Is(err, db.ErrVersionNotFound) {
				renderError(render, w, http.StatusNotFound, "version not found")
				return
			}
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}

		render.JSON(w, http.StatusOK, boardToResponse(board))
	}
}

func deltaHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := versionID(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		var req publishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(render, w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		set := model.PlayerSet{
			QB: toPlayerInputs(req.Players.QB),
			RB: toPlayerInputs(req.Players.RB),
			WR: toPlayerInputs(req.Players.WR),
			TE: toPlayerInputs(req.Players.TE),
		}

		ranked, err := ctrl.GetRankingDelta(r.Context(), id, set)
		if err != nil {
			if errors.Is(err, db.ErrVersionNotFound) {
				renderError(render, w, http.StatusNotFound, "version not found")
				return
			}
			var invalid *controller.InvalidPlayerError
			if errors.As(err, &invalid) {
				renderError(render, w, http.StatusBadRequest, invalid.Error())
				return
			}
			renderError(render, w, http.StatusInternalServerError, err.Error())
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"players": rankedSetToJSON(ranked),
		})
	}
}

func deleteVersionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := versionID(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		if err := ctrl.DeleteVersion(r.Context(), id); err != nil {
			if errors.Is(err, db.ErrVersionNotFound) {
				renderError(render, w, http.StatusNotFound, "version not found")
				return
			}
			renderError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func versionID(r *http.Request) (int32, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "versionID"))
	if err != nil {
		return 0, fmt.Errorf("error parsing version id: %v", err)
	}
	return int32(id), nil
}

func renderError(render *render.Render, w http.ResponseWriter, status int, msg string) {
	render.JSON(w, status, map[string]any{
		"success": false,
		"message": msg,
	})
}

func renderPublishError(render *render.Render, w http.ResponseWriter, err error) {
	var invalid *controller.InvalidPlayerError
	switch {
	case errors.As(err, &invalid):
		renderError(render, w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, db.ErrVersionNumberConflict):
		// Another publish won the race. The client should reload and retry.
		renderError(render, w, http.StatusConflict, "another update was published at the same time, reload and retry")
	default:
		renderError(render, w, http.StatusInternalServerError, "Failed to update rankings: "+err.Error())
	}
}

func renderPublishResult(render *render.Render, w http.ResponseWriter, result *model.PublishResult) {
	resp := publishResponse{
		Success:  true,
		Message:  fmt.Sprintf("Rankings updated successfully to version %d", result.VersionNumber),
		Warnings: result.Warnings,
	}
	resp.Version = &struct {
		ID            int32 `json:"id"`
		VersionNumber int32 `json:"version_number"`
		PlayerCount   int   `json:"player_count"`
	}{
		ID:            result.VersionID,
		VersionNumber: result.VersionNumber,
		PlayerCount:   result.PlayerCount,
	}
	render.JSON(w, http.StatusOK, resp)
}

func toPlayerInputs(players []playerInputJSON) []model.PlayerInput {
	results := make([]model.PlayerInput, 0, len(players))
	for _, p := range players {
		var team *model.NFLTeam
		// A missing team must stay nil so validation rejects the player;
		// an unrecognized code becomes the TBD placeholder.
		if strings.TrimSpace(p.NFLTeam) != "" {
			team = model.ParseTeam(p.NFLTeam)
		}

		results = append(results, model.PlayerInput{
			Name:           strings.TrimSpace(p.Name),
			Team:           team,
			ByeWeek:        p.ByeWeek,
			Bold:           p.IsBold,
			Italic:         p.IsItalic,
			SmallTierBreak: p.SmallTierBreak,
			BigTierBreak:   p.BigTierBreak,
			News:           p.NewsCopy,
		})
	}
	return results
}

func versionToJSON(v *model.Version) versionJSON {
	return versionJSON{
		ID:            v.ID,
		VersionNumber: v.Number,
		VersionDate:   v.Date.Format(time.RFC3339),
		IsCurrent:     v.IsCurrent,
		Notes:         v.Notes,
	}
}

func boardToResponse(board *model.RankingBoard) boardResponse {
	v := versionToJSON(&board.Version)
	return boardResponse{
		Success: true,
		Version: &v,
		Players: rankedSetToJSON(&board.Players),
	}
}

func rankedSetToJSON(set *model.RankedSet) playersByPositionJSON {
	return playersByPositionJSON{
		QB: playersToJSON(set.QB),
		RB: playersToJSON(set.RB),
		WR: playersToJSON(set.WR),
		TE: playersToJSON(set.TE),
	}
}

func playersToJSON(records []model.PlayerRecord) []playerJSON {
	results := make([]playerJSON, 0, len(records))
	for _, rec := range records {
		results = append(results, playerJSON{
			ID:             rec.ID,
			Name:           rec.Name,
			Position:       string(rec.Position),
			PositionRank:   rec.Rank,
			NFLTeam:        rec.Team.String(),
			ByeWeek:        rec.ByeWeek,
			IsBold:         rec.Bold,
			IsItalic:       rec.Italic,
			SmallTierBreak: rec.SmallTierBreak,
			BigTierBreak:   rec.BigTierBreak,
			NewsCopy:       rec.News,
			RankingChange:  rec.Change,
		})
	}
	return results
}

func emptyPlayersJSON() playersByPositionJSON {
	return playersByPositionJSON{
		QB: []playerJSON{},
		RB: []playerJSON{},
		WR: []playerJSON{},
		TE: []playerJSON{},
	}
}
