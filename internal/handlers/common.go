package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"pedalads/internal/logger"
	"pedalads/internal/models"
	helpers "pedalads/internal/utils/helpers"

	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies. Post content is the largest.
const maxBodyBytes = 1 << 20

const msgInvalidJSON = "invalid json"

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		logger.WithCtx(r.Context()).Warn("failed to decode request body",
			zap.String("path", r.URL.Path), zap.Error(err))
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// writeResult sends a service Result as is, with its status as the HTTP status.
func writeResult(w http.ResponseWriter, res models.Result) {
	helpers.Raw(w, res.Status, res)
}

func badJSON(w http.ResponseWriter) {
	writeResult(w, models.Fail(http.StatusBadRequest, msgInvalidJSON, nil))
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
