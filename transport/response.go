package transport

import (
	"encoding/json"
	"net/http"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/utils/errors"
)

type response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if ce, ok := err.(errors.CustomError); ok {
		w.WriteHeader(ce.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(response{
			Code:    ce.ErrorCode(),
			Message: ce.Error(),
		})
		return
	}

	internal := errors.SetCustomError(constant.ErrInternal)
	w.WriteHeader(internal.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(response{
		Code:    internal.ErrorCode(),
		Message: internal.Error(),
	})
}
