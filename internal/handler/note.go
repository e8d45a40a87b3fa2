package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rgoulding/notekeep/internal/auth"
	"github.com/rgoulding/notekeep/internal/model"
	"github.com/rgoulding/notekeep/internal/store"
	"github.com/rgoulding/notekeep/internal/ws"
)

type NoteHandler struct {
	noteStore *store.NoteStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *ws.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{noteStore: ns, hub: hub, logger: logger}
}

func (h *NoteHandler) publish(userID int64, ev ws.Event) {
	if h.hub != nil {
		h.hub.Publish(userID, ev)
	}
}

type addNoteRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=5"`
	Tag         string `json:"tag"`
}

// updateNoteRequest uses pointers so that absent fields stay untouched.
type updateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
}

// List returns all notes owned by the authenticated user.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	notes, err := h.noteStore.ListByOwner(userID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notes"})
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// Create adds a note owned by the authenticated user. Any client-supplied
// owner is ignored: ownership always comes from the token.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	note, err := h.noteStore.Create(userID, req.Title, req.Description, req.Tag)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []fieldError{{Msg: err.Error()}}})
			return
		}
		h.logger.Error("create note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create note"})
		return
	}

	h.publish(userID, ws.NewEvent("note", "created", note.ID))

	writeJSON(w, http.StatusOK, note)
}

// Update applies a partial update to one of the authenticated user's notes.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid ID format"})
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	patch := store.NotePatch{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	}

	note, err := h.noteStore.Update(id, userID, patch)
	if err != nil {
		h.writeNoteError(w, err, "update note")
		return
	}

	h.publish(userID, ws.NewEvent("note", "updated", id))

	writeJSON(w, http.StatusOK, note)
}

// Delete removes one of the authenticated user's notes.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid ID format"})
		return
	}

	if err := h.noteStore.Delete(id, userID); err != nil {
		h.writeNoteError(w, err, "delete note")
		return
	}

	h.publish(userID, ws.NewEvent("note", "deleted", id))

	writeJSON(w, http.StatusOK, map[string]string{"success": "Note has been deleted"})
}

// writeNoteError maps store errors to responses. A missing note and a note
// owned by someone else must stay distinguishable.
func (h *NoteHandler) writeNoteError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Note not found"})
	case errors.Is(err, store.ErrNotOwner):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not allowed"})
	default:
		h.logger.Error(op, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
