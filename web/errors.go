package web

import (
	"errors"
	"net/http"

	"github.com/mww/league_manager/model"
	"github.com/unrolled/render"
)

type errorBody struct {
	Code     string            `json:"code"`
	Kind     string            `json:"kind,omitempty"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func statusOf(kind model.Kind) int {
	switch kind {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindValidation:
		return http.StatusUnprocessableEntity
	case model.KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes rejections with their code and message. Anything else is
// an infrastructure fault and its details stay in the logs.
func renderError(render *render.Render, w http.ResponseWriter, err error) {
	var e *model.Error
	if !errors.As(err, &e) {
		render.JSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorBody{Code: "INTERNAL", Message: "internal error"},
		})
		return
	}

	render.JSON(w, statusOf(e.Kind()), errorResponse{
		Error: errorBody{
			Code:     string(e.Code),
			Kind:     e.Kind().String(),
			Message:  e.Error(),
			Metadata: e.Metadata,
		},
	})
}

func badRequest(render *render.Render, w http.ResponseWriter, msg string) {
	render.JSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Code: "BAD_REQUEST", Message: msg},
	})
}

func unauthorized(render *render.Render, w http.ResponseWriter, msg string) {
	render.JSON(w, http.StatusUnauthorized, errorResponse{
		Error: errorBody{Code: "UNAUTHORIZED", Message: msg},
	})
}
