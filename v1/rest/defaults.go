package rest

// Defaults applied by the endpoint facade when the caller leaves a field
// unset. Requests are copied before defaults are filled in.
const (
	DefaultLimit       uint64 = 10
	DefaultOffset      uint64 = 0
	DefaultWithPayload        = true
	DefaultWithVector         = false
	DefaultExact              = true
	DefaultWait               = true
)

func ptr[T any](v T) *T { return &v }

func waitOrDefault(wait *bool) *bool {
	if wait == nil {
		return ptr(DefaultWait)
	}
	return wait
}

func (r SearchRequest) withDefaults() SearchRequest {
	if r.Limit == nil {
		r.Limit = ptr(DefaultLimit)
	}
	if r.Offset == nil {
		r.Offset = ptr(DefaultOffset)
	}
	if r.WithPayload == nil {
		r.WithPayload = DefaultWithPayload
	}
	if r.WithVector == nil {
		r.WithVector = DefaultWithVector
	}
	return r
}

func (r RecommendRequest) withDefaults() RecommendRequest {
	if r.Limit == nil {
		r.Limit = ptr(DefaultLimit)
	}
	if r.Offset == nil {
		r.Offset = ptr(DefaultOffset)
	}
	if r.WithPayload == nil {
		r.WithPayload = DefaultWithPayload
	}
	if r.WithVector == nil {
		r.WithVector = DefaultWithVector
	}
	return r
}

func (r QueryRequest) withDefaults() QueryRequest {
	if r.Limit == nil {
		r.Limit = ptr(DefaultLimit)
	}
	return r
}

func (r PointRequest) withDefaults() PointRequest {
	if r.WithPayload == nil {
		r.WithPayload = DefaultWithPayload
	}
	return r
}

func (r ScrollRequest) withDefaults() ScrollRequest {
	if r.WithPayload == nil {
		r.WithPayload = DefaultWithPayload
	}
	if r.WithVector == nil {
		r.WithVector = DefaultWithVector
	}
	return r
}

func (r CountRequest) withDefaults() CountRequest {
	if r.Exact == nil {
		r.Exact = ptr(DefaultExact)
	}
	return r
}

func (r SearchRequestBatch) withDefaults() SearchRequestBatch {
	searches := make([]SearchRequest, len(r.Searches))
	for i, s := range r.Searches {
		searches[i] = s.withDefaults()
	}
	r.Searches = searches
	return r
}
