package rest

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// pathParam renders a path segment the way generated OpenAPI clients do.
func pathParam(name string, value any) (string, error) {
	s, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("[Qdrant] invalid path parameter %s: %w", name, err)
	}
	return s, nil
}

// queryParams collects form style query parameters. Nil values are skipped.
type queryParams struct {
	values url.Values
	err    error
}

func newQuery() *queryParams {
	return &queryParams{values: url.Values{}}
}

func (q *queryParams) add(name string, value any) *queryParams {
	if q.err != nil || value == nil {
		return q
	}
	switch v := value.(type) {
	case *bool:
		if v == nil {
			return q
		}
	case *string:
		if v == nil {
			return q
		}
	}

	styled, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		q.err = fmt.Errorf("[Qdrant] invalid query parameter %s: %w", name, err)
		return q
	}
	parsed, err := url.ParseQuery(styled)
	if err != nil {
		q.err = fmt.Errorf("[Qdrant] invalid query parameter %s: %w", name, err)
		return q
	}
	for k, vs := range parsed {
		for _, v := range vs {
			q.values.Add(k, v)
		}
	}
	return q
}

func (q *queryParams) encode() (url.Values, error) {
	return q.values, q.err
}
