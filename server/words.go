package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tabuparty/gameserver/logger"
	"github.com/tabuparty/gameserver/persistence"
	"github.com/tabuparty/gameserver/services"
)

// Word bank inventory endpoints. Every response is the
// {success, message, data} envelope; domain rejections are 400, store
// failures 500.

func (s *GameServer) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var item struct {
		Word   string   `json:"word"`
		Taboos []string `json:"taboos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeResult(w, http.StatusBadRequest, services.Result{
			Message: err.Error(),
			Data:    map[string]interface{}{},
		})
		return
	}

	result, err := s.wordService.Create(item.Word, item.Taboos)
	writeResult(w, statusFor(err), result)
}

func (s *GameServer) handleListWords(w http.ResponseWriter, r *http.Request) {
	result, err := s.wordService.List()
	writeResult(w, statusFor(err), result)
}

func (s *GameServer) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("word_id"))
	if err != nil {
		writeResult(w, http.StatusBadRequest, services.Result{
			Message: "word id must be an integer",
			Data:    map[string]interface{}{},
		})
		return
	}

	result, err := s.wordService.Delete(id)
	writeResult(w, statusFor(err), result)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case persistence.IsRejection(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeResult(w http.ResponseWriter, status int, result services.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Log.Errorf("Failed to write word bank response: %v", err)
	}
}
