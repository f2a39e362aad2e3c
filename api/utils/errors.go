// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"

	"github.com/pkg/errors"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return http.StatusText(e.status)
	}
	return e.cause.Error()
}

func (e *httpError) Unwrap() error { return e.cause }

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{cause, status}
}

// BadRequest marks a malformed request.
func BadRequest(cause error) error {
	return HTTPError(cause, http.StatusBadRequest)
}

// Forbidden marks a request the server refuses to serve.
func Forbidden(cause error) error {
	return HTTPError(cause, http.StatusForbidden)
}

// Rejected marks a well formed request that the ledger refused to apply.
func Rejected(cause error) error {
	return HTTPError(cause, http.StatusUnprocessableEntity)
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// An httpError anywhere in the chain decides the status, otherwise 500 is responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		var he *httpError
		if !errors.As(err, &he) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if he.cause == nil {
			w.WriteHeader(he.status)
			return
		}
		http.Error(w, he.cause.Error(), he.status)
	}
}
