package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-daily/internal/mines"
	"github.com/vancomm/minesweeper-daily/internal/store"
)

var (
	ErrBadBody      = errors.New("malformed request body")
	ErrGameNotFound = errors.New("game not found")
)

func SendJSON(w http.ResponseWriter, status int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, status int, v any) {
	if err := SendJSON(w, status, v); err != nil {
		log.WithError(err).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// sendError maps err onto a status code. Unexpected errors are logged and
// hidden from the client.
func sendError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var configErr *mines.ConfigError
	switch {
	case errors.Is(err, store.ErrNotFound):
		sendJSONOrLog(w, log, http.StatusNotFound, wrapError(ErrGameNotFound))
	case errors.As(err, &configErr):
		sendJSONOrLog(w, log, http.StatusBadRequest, wrapError(err))
	case errors.Is(err, ErrBadBody):
		sendJSONOrLog(w, log, http.StatusBadRequest, wrapError(err))
	default:
		log.WithError(err).Error("request failed")
		sendJSONOrLog(w, log, http.StatusInternalServerError,
			wrapError(errors.New("internal server error")))
	}
}

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// decodeRequest fills dst from a JSON body, or else from form and query
// values. Fields absent from the request keep the values dst came with.
func decodeRequest(dec *schema.Decoder, r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(dst)
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Join(ErrBadBody, err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return errors.Join(ErrBadBody, err)
	}
	if err := dec.Decode(dst, r.Form); err != nil {
		return errors.Join(ErrBadBody, err)
	}
	return nil
}
