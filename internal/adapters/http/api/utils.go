package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
)

// Query parameters of the time window.
const (
	paramStart  = "start"
	paramEnd    = "end"
	paramSecond = "second"
)

// windowFrom reads start, end and second from the query string. A missing
// start or second defaults to 0 and a missing end to the last minute of the
// match. Range checks are left to the service.
func windowFrom(ctx context.Context, r *http.Request, deps MetaProvider) (model.TimeWindow, error) {
	q := r.URL.Query()
	start, err := intParam(q.Get(paramStart), 0, paramStart)
	if err != nil {
		return model.TimeWindow{}, err
	}
	second, err := intParam(q.Get(paramSecond), 0, paramSecond)
	if err != nil {
		return model.TimeWindow{}, err
	}

	end := start
	if raw := q.Get(paramEnd); raw != "" {
		if end, err = intParam(raw, 0, paramEnd); err != nil {
			return model.TimeWindow{}, err
		}
	} else {
		meta, err := deps.Meta(ctx)
		if err != nil {
			return model.TimeWindow{}, err
		}
		end = max(meta.MaxMinute, start)
	}
	return model.TimeWindow{StartMinute: start, EndMinute: end, Second: second}, nil
}

func intParam(raw string, def int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrBadRequest, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
