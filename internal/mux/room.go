package mux

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"weizen-server/pkg/account"
)

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*account.Player)
		rooms, err := player.GetRooms(r.Context(), offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, rooms)
	}
}

type postRoomPayload struct {
	Name string `json:"name"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*account.Player)
		rm, err := player.CreateRoom(r.Context(), pp.Name)
		if err != nil {
			var ue account.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, rm)
	}
}

type getRoomUUIDResponse struct {
	*account.Room
	Seats []*account.Seat `json:"seats"`
}

func (m *Mux) getRoomUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rm := r.Context().Value(ctxRoomKey).(*account.Room)
		seats, err := rm.GetSeats(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, getRoomUUIDResponse{
			Room:  rm,
			Seats: seats,
		})
	})
}

func (m *Mux) postRoomUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*account.Player)
		rm := r.Context().Value(ctxRoomKey).(*account.Room)

		m.joinRoom(w, r, player, rm)
	})
}

// postRoomCodeSeat joins a room by its shareable code
func (m *Mux) postRoomCodeSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*account.Player)

		rm, err := account.GetRoomByCode(r.Context(), mux.Vars(r)["code"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		m.joinRoom(w, r, player, rm)
	}
}

func (m *Mux) joinRoom(w http.ResponseWriter, r *http.Request, player *account.Player, rm *account.Room) {
	seat, err := player.Join(r.Context(), rm)
	if err != nil {
		if err == account.ErrDuplicateKey {
			writeJSONError(w, http.StatusBadRequest, errors.New("player is already in the room"))
		} else {
			writeJSONError(w, http.StatusInternalServerError, err)
		}

		return
	}

	writeJSON(w, http.StatusCreated, seat)
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := mux.Vars(r)["uuid"]
		rm, err := account.GetRoomByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxRoomKey, rm)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
