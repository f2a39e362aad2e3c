// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/ledger/thor"
)

const JSONContentType = "application/json; charset=utf-8"

// ParseJSON decodes r into v, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// ParseBody is ParseJSON for request bodies, failures are bad requests.
func ParseBody(r io.Reader, v any) error {
	if err := ParseJSON(r, v); err != nil {
		return BadRequest(errors.WithMessage(err, "body"))
	}
	return nil
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// ParseAddress parses an account address taken from the named request parameter.
func ParseAddress(s, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// QueryUint parses an optional unsigned query parameter. ok is false when absent.
func QueryUint(query url.Values, name string) (v uint64, ok bool, err error) {
	s := query.Get(name)
	if s == "" {
		return 0, false, nil
	}
	if v, err = strconv.ParseUint(s, 10, 64); err != nil {
		return 0, false, BadRequest(errors.WithMessage(err, name))
	}
	return v, true, nil
}
